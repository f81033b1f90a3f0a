package cmd

import (
	"github.com/Tiliavir/hourly-rate-calculator/internal/config"
	"github.com/Tiliavir/hourly-rate-calculator/internal/earnings"
	"github.com/Tiliavir/hourly-rate-calculator/internal/model"
	"github.com/Tiliavir/hourly-rate-calculator/internal/storage"
)

// loadSheet reads the sheet file, fills empty fields from the configured
// defaults and repairs the expense list. Storage errors terminate.
func loadSheet() model.Sheet {
	s, err := storage.LoadSheet(sheetPath)
	if err != nil {
		fail(exitFailure, err)
	}
	applyDefaults(&s, cfg.Defaults)
	earnings.ExpenseList(s.Expenses).Normalize()
	return s
}

func applyDefaults(s *model.Sheet, d config.DefaultsConfig) {
	if s.WorkerName == "" {
		s.WorkerName = d.WorkerName
	}
	if s.HourlyRate == "" {
		s.HourlyRate = d.HourlyRate
	}
	if s.Expenses == nil {
		s.Expenses = []model.ExpenseItem{}
	}
}

// saveSheet re-evaluates s, so a start/end pair stores its canonical
// duration text, and writes it. Storage errors terminate.
func saveSheet(s *model.Sheet) earnings.Snapshot {
	snap := earnings.Evaluate(s)
	if err := storage.SaveSheet(sheetPath, *s); err != nil {
		fail(exitFailure, err)
	}
	logger.Debug("sheet saved", "path", sheetPath, "expenses", len(s.Expenses), "net", snap.Totals.NetIncome)
	return snap
}
