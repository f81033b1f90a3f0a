package cmd

import (
	"strings"
	"testing"

	"github.com/Tiliavir/hourly-rate-calculator/internal/config"
	"github.com/Tiliavir/hourly-rate-calculator/internal/model"
	"github.com/Tiliavir/hourly-rate-calculator/internal/timecalc"
)

func TestRenderTableAlignsColumns(t *testing.T) {
	out := renderTable([]string{"ID", "NAME"}, [][]string{
		{"a", "Parking"},
		{"abcdef", "X"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[2], "a       Parking") {
		t.Errorf("row 1 = %q, want column padded to width 6 plus gap", lines[2])
	}
}

func TestRenderTableNoHeaders(t *testing.T) {
	if got := renderTable(nil, [][]string{{"x"}}); got != "" {
		t.Errorf("renderTable(nil) = %q, want empty", got)
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("shortID = %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID = %q", got)
	}
}

func TestFormatDurationLine(t *testing.T) {
	tests := []struct {
		hours timecalc.Hours
		want  string
	}{
		{7.25, "7:15 h  (7.25 h, 7h 15m)"},
		{0, "0:00 h  (0 h, 0m)"},
	}
	for _, tt := range tests {
		if got := formatDurationLine(tt.hours); got != tt.want {
			t.Errorf("formatDurationLine(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}

func TestApplyDefaults(t *testing.T) {
	s := model.Sheet{HourlyRate: "30"}
	applyDefaults(&s, config.DefaultsConfig{WorkerName: "Jane", HourlyRate: "25"})

	if s.WorkerName != "Jane" {
		t.Errorf("WorkerName = %q, want Jane", s.WorkerName)
	}
	if s.HourlyRate != "30" {
		t.Errorf("HourlyRate = %q, want the sheet value 30", s.HourlyRate)
	}
	if s.Expenses == nil {
		t.Error("Expenses is nil")
	}
}

func TestClearedSheetKeepsWorker(t *testing.T) {
	s := model.Sheet{
		WorkerName:   "Jane",
		ClientName:   "Acme",
		HourlyRate:   "25",
		DurationText: "8:00",
		Expenses:     []model.ExpenseItem{{ID: "a"}},
	}
	got := clearedSheet(s)
	if got.WorkerName != "Jane" || got.ClientName != "" || got.HourlyRate != "" || got.DurationText != "" {
		t.Errorf("clearedSheet = %+v", got)
	}
	if len(got.Expenses) != 0 {
		t.Errorf("expenses not cleared: %v", got.Expenses)
	}
}

func TestUnescapeNewlines(t *testing.T) {
	if got := unescapeNewlines(`1 Main St\nSpringfield`); got != "1 Main St\nSpringfield" {
		t.Errorf("unescapeNewlines = %q", got)
	}
}

func TestEscapeNewlinesRoundTrip(t *testing.T) {
	in := "1 Main St\nSpringfield"
	if got := escapeNewlines(in); got != `1 Main St\nSpringfield` {
		t.Errorf("escapeNewlines = %q", got)
	}
	if got := unescapeNewlines(escapeNewlines(in)); got != in {
		t.Errorf("round trip = %q", got)
	}
}
