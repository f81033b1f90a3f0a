// Package invoice builds the invoice description for a sheet and renders it
// into a downloadable document.
package invoice

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Tiliavir/hourly-rate-calculator/internal/earnings"
	"github.com/Tiliavir/hourly-rate-calculator/internal/model"
	"github.com/Tiliavir/hourly-rate-calculator/internal/timecalc"
)

// DateLayout is the long US date used on the document.
const DateLayout = "January 2, 2006"

// Options carries the document settings that do not come from the sheet.
type Options struct {
	Currency string
	DueDays  int
	Notes    string
	Terms    string
}

// Number derives an invoice number from the current time. It is not unique
// across machines.
func Number(t time.Time) string {
	return "INV-" + t.Format("20060102-150405")
}

// Build assembles the invoice for s. snap must be the evaluation of s.
// The labor line comes first, followed by one line per expense in list order.
func Build(s model.Sheet, snap earnings.Snapshot, opts Options, now time.Time) model.Invoice {
	currency := opts.Currency
	if currency == "" {
		currency = "$"
	}
	inv := model.Invoice{
		Number:        Number(now),
		Issuer:        strings.TrimSpace(s.WorkerName),
		ClientName:    strings.TrimSpace(s.ClientName),
		ClientAddress: strings.TrimSpace(s.ClientAddress),
		IssueDate:     now,
		DueDate:       now.AddDate(0, 0, opts.DueDays),
		Currency:      currency,
		Notes:         opts.Notes,
		Terms:         opts.Terms,
		Lines:         []model.InvoiceLine{},
	}

	if snap.Hours > 0 || snap.HourlyRate > 0 {
		inv.Lines = append(inv.Lines, model.InvoiceLine{
			Description: laborDescription(s, snap),
			Quantity:    float64(snap.Hours),
			Rate:        snap.HourlyRate,
			Hours:       true,
		})
	}
	for _, item := range s.Expenses {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			name = "Expense"
		}
		inv.Lines = append(inv.Lines, model.InvoiceLine{
			Description: name,
			Quantity:    float64(item.Quantity),
			Rate:        item.UnitPrice,
		})
	}
	return inv
}

func laborDescription(s model.Sheet, snap earnings.Snapshot) string {
	clock := timecalc.FormatClock(snap.Hours)
	if snap.FromClock {
		start, _ := timecalc.ParseTimeOfDay(s.StartTime)
		end, _ := timecalc.ParseTimeOfDay(s.EndTime)
		return fmt.Sprintf("Labor %s-%s (%s h)", start, end, clock)
	}
	return fmt.Sprintf("Labor (%s h)", clock)
}

// LineAmount returns quantity × rate.
func LineAmount(l model.InvoiceLine) float64 {
	return l.Quantity * l.Rate
}

// Subtotal sums all line amounts.
func Subtotal(inv model.Invoice) float64 {
	var sum float64
	for _, l := range inv.Lines {
		sum += LineAmount(l)
	}
	return sum
}

// Tax is always zero; tax computation is not supported.
func Tax(model.Invoice) float64 {
	return 0
}

// Total is Subtotal plus Tax.
func Total(inv model.Invoice) float64 {
	return Subtotal(inv) + Tax(inv)
}

// Filename returns "invoice-<number>.<ext>".
func Filename(inv model.Invoice, ext string) string {
	return fmt.Sprintf("invoice-%s.%s", inv.Number, strings.TrimPrefix(ext, "."))
}

// FormatQuantity renders a quantity with at most two fractional digits.
func FormatQuantity(q float64) string {
	s := strconv.FormatFloat(q, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// LineQuantity renders the quantity column of l. Worked time is shown as H:MM.
func LineQuantity(l model.InvoiceLine) string {
	if l.Hours {
		return timecalc.FormatClock(timecalc.Hours(l.Quantity))
	}
	return FormatQuantity(l.Quantity)
}
