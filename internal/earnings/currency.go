package earnings

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// FormatCurrency renders amount in US-dollar style, e.g. "$1,234.50".
func FormatCurrency(amount float64) string {
	return FormatAmount("$", amount)
}

// FormatAmount renders amount with the given symbol, thousands separators and
// two decimal places. Negative amounts are prefixed with "-".
func FormatAmount(symbol string, amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	cents := int64(math.Round(math.Abs(amount) * 100))
	sign := ""
	if amount < 0 && cents > 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%s%s.%02d", sign, symbol, humanize.Comma(cents/100), cents%100)
}
