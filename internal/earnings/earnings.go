// Package earnings turns resolved hours, an hourly rate and expense items
// into income totals. None of its functions fail: invalid numbers count as 0.
package earnings

import (
	"github.com/Tiliavir/hourly-rate-calculator/internal/model"
	"github.com/Tiliavir/hourly-rate-calculator/internal/timecalc"
)

// Totals is the derived income snapshot.
type Totals struct {
	GrossIncome  float64 `json:"gross_income"`
	ExpenseTotal float64 `json:"expense_total"`
	NetIncome    float64 `json:"net_income"`
}

// Inputs are the already parsed values ComputeTotals works on.
type Inputs struct {
	HourlyRate float64
	Hours      timecalc.Hours
	Expenses   []model.ExpenseItem
}

// ParseAmount parses a money amount such as an hourly rate or unit price.
// The leading number is used ("25/hr" is 25); input without one, or a
// negative amount, yields 0.
func ParseAmount(s string) float64 {
	return timecalc.LeadingNumber(s)
}

// ParseQuantity parses an item quantity from its leading digits, so a
// decimal is truncated. Invalid or negative input yields 0.
func ParseQuantity(s string) int {
	return timecalc.LeadingInt(s)
}

// LineTotal returns quantity × unit price.
func LineTotal(item model.ExpenseItem) float64 {
	return float64(item.Quantity) * item.UnitPrice
}

// ExpenseTotal sums the line totals of all items.
func ExpenseTotal(items []model.ExpenseItem) float64 {
	var total float64
	for _, item := range items {
		total += LineTotal(item)
	}
	return total
}

// ComputeTotals derives gross, expense and net income from in.
func ComputeTotals(in Inputs) Totals {
	gross := in.HourlyRate * float64(in.Hours)
	expenses := ExpenseTotal(in.Expenses)
	return Totals{
		GrossIncome:  gross,
		ExpenseTotal: expenses,
		NetIncome:    gross + expenses,
	}
}

// Snapshot is the full result of evaluating a sheet.
type Snapshot struct {
	Hours        timecalc.Hours
	DurationText string
	Rewritten    bool
	FromClock    bool
	HourlyRate   float64
	Totals       Totals
}

// Evaluate resolves the worked time of s, parses its rate and computes the
// totals. When a start/end pair produced a new canonical duration text, the
// text is written back into s.
func Evaluate(s *model.Sheet) Snapshot {
	res := timecalc.Resolve(timecalc.ResolveInput{
		Start:        s.StartTime,
		End:          s.EndTime,
		DurationText: s.DurationText,
	})
	if res.Rewritten {
		s.DurationText = res.DurationText
	}
	rate := ParseAmount(s.HourlyRate)
	return Snapshot{
		Hours:        res.Hours,
		DurationText: res.DurationText,
		Rewritten:    res.Rewritten,
		FromClock:    res.FromClock,
		HourlyRate:   rate,
		Totals: ComputeTotals(Inputs{
			HourlyRate: rate,
			Hours:      res.Hours,
			Expenses:   s.Expenses,
		}),
	}
}
