package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Tiliavir/hourly-rate-calculator/internal/earnings"
	"github.com/Tiliavir/hourly-rate-calculator/internal/model"
	"github.com/Tiliavir/hourly-rate-calculator/internal/timecalc"
)

// Gruvbox-inspired color palette.
var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorYellow = lipgloss.Color("#fabd2f")
	colorRed    = lipgloss.Color("#fb4934")
	colorDim    = lipgloss.Color("#928374")
	colorFg     = lipgloss.Color("#ebdbb2")
	colorHeader = lipgloss.Color("#fe8019")
)

var (
	styleGreen  = lipgloss.NewStyle().Foreground(colorGreen)
	styleYellow = lipgloss.NewStyle().Foreground(colorYellow)
	styleRed    = lipgloss.NewStyle().Foreground(colorRed)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleHeader = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	styleBold   = lipgloss.NewStyle().Foreground(colorFg).Bold(true)
)

// renderBox wraps content in a rounded-border box with an optional title.
func renderBox(title, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorDim).
		Padding(1, 2)
	if title != "" {
		return box.Render(styleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return box.Render(content)
}

// renderTable renders an aligned table with a header separator line.
// Column widths are measured on visible width so styled cells line up.
func renderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	const colGap = 2

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(headers) && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString(style(cell))
			if i < len(headers)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return styleHeader.Render(s) })
	sep := make([]string, len(headers))
	for i, w := range widths {
		sep[i] = strings.Repeat("─", w)
	}
	writeRow(sep, func(s string) string { return styleDim.Render(s) })
	for _, row := range rows {
		writeRow(row, func(s string) string { return s })
	}
	return b.String()
}

// summaryLines lists the resolved time and the three totals.
func summaryLines(s model.Sheet, snap earnings.Snapshot, currency string) string {
	money := func(v float64) string { return earnings.FormatAmount(currency, v) }
	label := func(s string) string { return styleDim.Render(fmt.Sprintf("%-10s", s)) }

	hours := fmt.Sprintf("%s h (%s)", timecalc.FormatClock(snap.Hours), timecalc.FormatDecimal(snap.Hours))
	if snap.FromClock {
		start, _ := timecalc.ParseTimeOfDay(s.StartTime)
		end, _ := timecalc.ParseTimeOfDay(s.EndTime)
		hours += styleDim.Render(fmt.Sprintf("  %s-%s", start, end))
		if end.Minutes() < start.Minutes() {
			hours += styleYellow.Render("  overnight")
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s\n", label("Time"), hours)
	fmt.Fprintf(&b, "%s%s/h\n", label("Rate"), money(snap.HourlyRate))
	fmt.Fprintf(&b, "%s%s\n", label("Gross"), money(snap.Totals.GrossIncome))
	fmt.Fprintf(&b, "%s%s\n", label("Expenses"), money(snap.Totals.ExpenseTotal))
	fmt.Fprintf(&b, "%s%s", label("Net"), styleGreen.Bold(true).Render(money(snap.Totals.NetIncome)))
	return b.String()
}

// expenseRows formats items for renderTable.
func expenseRows(items []model.ExpenseItem, currency string) [][]string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		name := item.Name
		if name == "" {
			name = styleDim.Render("(unnamed)")
		}
		rows = append(rows, []string{
			styleDim.Render(shortID(item.ID)),
			name,
			fmt.Sprintf("%d", item.Quantity),
			earnings.FormatAmount(currency, item.UnitPrice),
			earnings.FormatAmount(currency, item.LineTotal),
		})
	}
	return rows
}

var expenseHeaders = []string{"ID", "NAME", "QTY", "PRICE", "TOTAL"}

// printSummary writes the totals box and, when present, the expense table.
func printSummary(w io.Writer, s model.Sheet, snap earnings.Snapshot) {
	fmt.Fprintln(w, renderBox("Earnings", summaryLines(s, snap, cfg.Invoice.Currency)))
	if len(s.Expenses) > 0 {
		fmt.Fprintln(w)
		fmt.Fprint(w, renderTable(expenseHeaders, expenseRows(s.Expenses, cfg.Invoice.Currency)))
	}
}

// shortID returns the first eight characters of an expense ID.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// hrcHuhTheme returns a huh theme using the palette above.
func hrcHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(colorFg).Background(colorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(colorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(colorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(colorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(colorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(colorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(colorDim)

	return t
}
