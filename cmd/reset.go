package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/hourly-rate-calculator/internal/model"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the sheet, keeping your name",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	s := loadSheet()
	cleared := clearedSheet(s)
	saveSheet(&cleared)
	fmt.Fprintf(cmd.OutOrStdout(), "Sheet cleared (%d expenses removed).\n", len(s.Expenses))
	return nil
}

func clearedSheet(s model.Sheet) model.Sheet {
	return model.Sheet{
		WorkerName: s.WorkerName,
		Expenses:   []model.ExpenseItem{},
	}
}
