package main

import "github.com/Tiliavir/hourly-rate-calculator/cmd"

func main() {
	cmd.Execute()
}
