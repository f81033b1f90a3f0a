package invoice_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/hourly-rate-calculator/internal/invoice"
	"github.com/Tiliavir/hourly-rate-calculator/internal/model"
)

// blockingRenderer holds Render open until release is closed.
type blockingRenderer struct {
	entered chan struct{}
	release chan struct{}
}

func (r *blockingRenderer) Ext() string { return "txt" }

func (r *blockingRenderer) Render(inv model.Invoice, w io.Writer) error {
	close(r.entered)
	<-r.release
	_, err := io.WriteString(w, inv.Number)
	return err
}

type failingRenderer struct{}

func (failingRenderer) Ext() string { return "txt" }

func (failingRenderer) Render(model.Invoice, io.Writer) error {
	return errors.New("disk full")
}

func TestExportRejectsConcurrentRequest(t *testing.T) {
	r := &blockingRenderer{entered: make(chan struct{}), release: make(chan struct{})}
	e := invoice.NewExporter(r, nil)
	inv := model.Invoice{Number: "INV-1"}

	done := make(chan error, 1)
	var first bytes.Buffer
	go func() { done <- e.Export(context.Background(), inv, &first) }()

	select {
	case <-r.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("first export never started")
	}
	assert.True(t, e.Busy())

	err := e.Export(context.Background(), inv, io.Discard)
	assert.ErrorIs(t, err, invoice.ErrExportInProgress)

	close(r.release)
	require.NoError(t, <-done)
	assert.Equal(t, "INV-1", first.String())
	assert.False(t, e.Busy())
}

func TestExportResetsBusyOnFailure(t *testing.T) {
	e := invoice.NewExporter(failingRenderer{}, nil)

	err := e.Export(context.Background(), model.Invoice{Number: "INV-2"}, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.False(t, e.Busy())

	// a second attempt is not rejected as in progress
	err = e.Export(context.Background(), model.Invoice{Number: "INV-2"}, io.Discard)
	assert.NotErrorIs(t, err, invoice.ErrExportInProgress)
}

func TestExportCancelledContext(t *testing.T) {
	e := invoice.NewExporter(invoice.XLSX{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.Export(ctx, model.Invoice{}, io.Discard)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, e.Busy())
}

func TestSaveFileWritesXLSX(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	inv, _ := build(t, sampleSheet(), invoice.Options{DueDays: 30, Notes: "Thank you"})
	e := invoice.NewExporter(invoice.XLSX{}, nil)

	path, err := e.SaveFile(context.Background(), inv, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "invoice-INV-20260314-093005.xlsx"), path)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file left behind")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	v, err := f.GetCellValue(invoice.SheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "INVOICE", v)
}

func TestSaveFileFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	e := invoice.NewExporter(failingRenderer{}, nil)

	_, err := e.SaveFile(context.Background(), model.Invoice{Number: "INV-3"}, dir)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestXLSXContent(t *testing.T) {
	inv, _ := build(t, sampleSheet(), invoice.Options{DueDays: 30, Terms: "Net 30"})

	var buf bytes.Buffer
	require.NoError(t, invoice.XLSX{}.Render(inv, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	rows, err := f.GetRows(invoice.SheetName)
	require.NoError(t, err)

	var text []string
	for _, row := range rows {
		text = append(text, strings.Join(row, "|"))
	}
	all := strings.Join(text, "\n")

	assert.Contains(t, all, "# INV-20260314-093005")
	assert.Contains(t, all, "Jane Doe")
	assert.Contains(t, all, "Springfield")
	assert.Contains(t, all, "March 14, 2026")
	assert.Contains(t, all, "April 13, 2026")
	assert.Contains(t, all, "Labor 22:00-06:00 (8:00 h)|8:00|$25.00|$200.00")
	assert.Contains(t, all, "Parking|2|$3.50|$7.00")
	assert.Contains(t, all, "TOTAL:|$217.00")
	assert.Contains(t, all, "Net 30")
}

func TestXLSXLaborQuantityMatchesAmount(t *testing.T) {
	s := model.Sheet{HourlyRate: "30", StartTime: "09:00", EndTime: "16:20"}
	inv, _ := build(t, s, invoice.Options{})

	var buf bytes.Buffer
	require.NoError(t, invoice.XLSX{}.Render(inv, &buf))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	rows, err := f.GetRows(invoice.SheetName)
	require.NoError(t, err)

	var found bool
	for _, row := range rows {
		if len(row) == 4 && strings.HasPrefix(row[0], "Labor") {
			found = true
			assert.Equal(t, []string{"Labor 09:00-16:20 (7:20 h)", "7:20", "$30.00", "$220.00"}, row)
		}
	}
	assert.True(t, found, "no labor row in %v", rows)
}
