package invoice

import (
	"fmt"
	"io"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize/v2"

	"github.com/Tiliavir/hourly-rate-calculator/internal/earnings"
	"github.com/Tiliavir/hourly-rate-calculator/internal/model"
)

// SheetName is the worksheet the invoice is written to.
const SheetName = "Invoice"

var (
	titleStyle = `{
		"font": {"bold": true, "size": 20, "color": "#3B82F6"}
	}`
	labelStyle = `{
		"font": {"bold": true, "color": "#6B7280"}
	}`
	headerStyle = `{
		"font": {"bold": true, "color": "#6B7280"},
		"fill": {"type": "pattern", "color": ["#F8FAFC"], "pattern": 1},
		"border": [
			{"type": "bottom", "color": "#000000", "style": 1}
		]
	}`
	totalStyle = `{
		"font": {"bold": true, "size": 14, "color": "#FFFFFF"},
		"fill": {"type": "pattern", "color": ["#3B82F6"], "pattern": 1}
	}`
)

// XLSX renders invoices as an Excel workbook.
type XLSX struct{}

// Ext implements Renderer.
func (XLSX) Ext() string { return "xlsx" }

// Render implements Renderer.
func (XLSX) Render(inv model.Invoice, w io.Writer) error {
	f := excelize.NewFile()
	f.NewSheet(SheetName)
	// delete default sheet
	f.DeleteSheet("Sheet1")

	if err := f.SetColWidth(SheetName, "A", "A", 48); err != nil {
		return fmt.Errorf("setting column width: %w", err)
	}
	if err := f.SetColWidth(SheetName, "B", "D", 18); err != nil {
		return fmt.Errorf("setting column width: %w", err)
	}

	styles := map[string]int{}
	for name, def := range map[string]string{
		"title":  titleStyle,
		"label":  labelStyle,
		"header": headerStyle,
		"total":  totalStyle,
	} {
		id, err := f.NewStyle(def)
		if err != nil {
			return fmt.Errorf("creating %s style: %w", name, err)
		}
		styles[name] = id
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("opening stream writer: %w", err)
	}

	row := 1
	put := func(values ...interface{}) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		row++
		return sw.SetRow(cell, values)
	}
	styled := func(style string, v interface{}) excelize.Cell {
		return excelize.Cell{StyleID: styles[style], Value: v}
	}
	money := func(v float64) string {
		return earnings.FormatAmount(inv.Currency, v)
	}

	rows := [][]interface{}{
		{styled("title", "INVOICE"), "", "", styled("label", "# "+inv.Number)},
		{},
		{styled("label", "FROM:"), "", styled("label", "TO:")},
		{inv.Issuer, "", inv.ClientName},
	}
	for _, line := range splitLines(inv.ClientAddress) {
		rows = append(rows, []interface{}{"", "", line})
	}
	rows = append(rows,
		[]interface{}{},
		[]interface{}{styled("label", "INVOICE DATE:"), "", styled("label", "DUE DATE:")},
		[]interface{}{inv.IssueDate.Format(DateLayout), "", inv.DueDate.Format(DateLayout)},
		[]interface{}{},
		[]interface{}{
			styled("header", "DESCRIPTION"),
			styled("header", "QTY"),
			styled("header", "RATE"),
			styled("header", "AMOUNT"),
		},
	)
	for _, l := range inv.Lines {
		rows = append(rows, []interface{}{
			l.Description,
			LineQuantity(l),
			money(l.Rate),
			money(LineAmount(l)),
		})
	}
	rows = append(rows,
		[]interface{}{},
		[]interface{}{"", "", "Subtotal:", money(Subtotal(inv))},
		[]interface{}{"", "", "Tax:", money(Tax(inv))},
		[]interface{}{"", "", styled("total", "TOTAL:"), styled("total", money(Total(inv)))},
	)
	if inv.Notes != "" {
		rows = append(rows, []interface{}{}, []interface{}{styled("label", "NOTES:")}, []interface{}{inv.Notes})
	}
	if inv.Terms != "" {
		rows = append(rows, []interface{}{}, []interface{}{styled("label", "TERMS:")}, []interface{}{inv.Terms})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Generated: " + inv.IssueDate.Format("01/02/2006")})

	for _, r := range rows {
		if err := put(r...); err != nil {
			return fmt.Errorf("writing row %d: %w", row, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flushing stream writer: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
