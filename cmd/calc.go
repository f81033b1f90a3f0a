package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/hourly-rate-calculator/internal/earnings"
	"github.com/Tiliavir/hourly-rate-calculator/internal/model"
	"github.com/Tiliavir/hourly-rate-calculator/internal/timecalc"
)

var (
	calcRate     string
	calcStart    string
	calcEnd      string
	calcDuration string
	calcExpenses []string
	calcFormat   string
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Compute earnings for the sheet without saving",
	Long: `Evaluate the current sheet and print gross income, expenses and net income.

Flags override sheet fields for this run only. A start and end time always
win over --duration; an end before the start is treated as an overnight shift.

  hrc calc --rate 25 --start 22:00 --end 06:00
  hrc calc --rate 40 --duration 7:15 --expense "Parking:2:3.50"`,
	Args: cobra.NoArgs,
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().StringVar(&calcRate, "rate", "", "Hourly rate")
	calcCmd.Flags().StringVar(&calcStart, "start", "", "Start time (HH:MM)")
	calcCmd.Flags().StringVar(&calcEnd, "end", "", "End time (HH:MM)")
	calcCmd.Flags().StringVar(&calcDuration, "duration", "", "Worked time as H:MM or decimal hours")
	calcCmd.Flags().StringArrayVar(&calcExpenses, "expense", nil, "Extra expense as name:qty:price (repeatable)")
	calcCmd.Flags().StringVar(&calcFormat, "format", "md", "Output format: md, json, csv")
}

func runCalc(cmd *cobra.Command, args []string) error {
	s := loadSheet()

	flags := cmd.Flags()
	if flags.Changed("rate") {
		s.HourlyRate = calcRate
	}
	if flags.Changed("start") {
		s.StartTime = calcStart
	}
	if flags.Changed("end") {
		s.EndTime = calcEnd
	}
	if flags.Changed("duration") {
		s.DurationText = calcDuration
	}

	list := earnings.ExpenseList(s.Expenses)
	for _, raw := range calcExpenses {
		name, qty, price, err := parseExpenseFlag(raw)
		if err != nil {
			fail(exitUsage, err)
		}
		list.Add(name, qty, price)
	}
	s.Expenses = list

	snap := earnings.Evaluate(&s)
	logger.Debug("sheet evaluated", "hours", float64(snap.Hours), "from_clock", snap.FromClock, "rewritten", snap.Rewritten)

	out := cmd.OutOrStdout()
	switch calcFormat {
	case "json":
		if err := printJSON(out, s, snap); err != nil {
			fail(exitFailure, fmt.Errorf("error encoding JSON: %w", err))
		}
	case "csv":
		printCSV(out, s, snap)
	default: // md
		printSummary(out, s, snap)
	}
	return nil
}

// parseExpenseFlag splits "name:qty:price". The name may itself contain
// colons; quantity and price are taken from the last two fields and fall
// back to 0 when they are not numbers.
func parseExpenseFlag(raw string) (string, int, float64, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 3 {
		return "", 0, 0, fmt.Errorf("invalid expense %q: want name:qty:price", raw)
	}
	n := len(parts)
	name := strings.TrimSpace(strings.Join(parts[:n-2], ":"))
	return name, earnings.ParseQuantity(parts[n-2]), earnings.ParseAmount(parts[n-1]), nil
}

type calcOutput struct {
	Hours      float64             `json:"hours"`
	Duration   string              `json:"duration"`
	FromClock  bool                `json:"from_clock"`
	HourlyRate float64             `json:"hourly_rate"`
	Expenses   []model.ExpenseItem `json:"expenses"`
	Totals     earnings.Totals     `json:"totals"`
}

func printJSON(w io.Writer, s model.Sheet, snap earnings.Snapshot) error {
	data, err := json.MarshalIndent(calcOutput{
		Hours:      float64(snap.Hours),
		Duration:   timecalc.FormatClock(snap.Hours),
		FromClock:  snap.FromClock,
		HourlyRate: snap.HourlyRate,
		Expenses:   s.Expenses,
		Totals:     snap.Totals,
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func printCSV(w io.Writer, s model.Sheet, snap earnings.Snapshot) {
	amount := func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

	fmt.Fprintln(w, "line,quantity,rate,amount")
	fmt.Fprintf(w, "%s,%s,%s,%s\n",
		csvEscape("Labor "+timecalc.FormatClock(snap.Hours)),
		timecalc.FormatDecimal(snap.Hours),
		amount(snap.HourlyRate),
		amount(snap.Totals.GrossIncome),
	)
	for _, item := range s.Expenses {
		fmt.Fprintf(w, "%s,%d,%s,%s\n",
			csvEscape(item.Name),
			item.Quantity,
			amount(item.UnitPrice),
			amount(item.LineTotal),
		)
	}
	fmt.Fprintf(w, "gross_income,,,%s\n", amount(snap.Totals.GrossIncome))
	fmt.Fprintf(w, "expense_total,,,%s\n", amount(snap.Totals.ExpenseTotal))
	fmt.Fprintf(w, "net_income,,,%s\n", amount(snap.Totals.NetIncome))
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	// Escape internal double quotes by doubling them.
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
