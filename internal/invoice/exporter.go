package invoice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/Tiliavir/hourly-rate-calculator/internal/model"
	"github.com/Tiliavir/hourly-rate-calculator/internal/storage"
)

// ErrExportInProgress is returned when an export is requested while another
// one on the same Exporter has not finished.
var ErrExportInProgress = errors.New("invoice export already in progress")

// Renderer turns an invoice into a document.
type Renderer interface {
	Render(inv model.Invoice, w io.Writer) error
	Ext() string
}

// Exporter renders invoices one at a time.
type Exporter struct {
	renderer Renderer
	logger   *slog.Logger
	busy     atomic.Bool
}

// NewExporter returns an Exporter using r. A nil logger discards output.
func NewExporter(r Renderer, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Exporter{renderer: r, logger: logger}
}

// Busy reports whether an export is running.
func (e *Exporter) Busy() bool {
	return e.busy.Load()
}

// Export renders inv into w.
func (e *Exporter) Export(ctx context.Context, inv model.Invoice, w io.Writer) error {
	return e.guard(ctx, inv, func() error {
		return e.renderer.Render(inv, w)
	})
}

// SaveFile renders inv into dir and returns the written path. The file only
// appears once it is complete.
func (e *Exporter) SaveFile(ctx context.Context, inv model.Invoice, dir string) (string, error) {
	path := filepath.Join(dir, Filename(inv, e.renderer.Ext()))
	err := e.guard(ctx, inv, func() error {
		return storage.WriteFileAtomic(path, 0o644, func(w io.Writer) error {
			return e.renderer.Render(inv, w)
		})
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

func (e *Exporter) guard(ctx context.Context, inv model.Invoice, fn func() error) error {
	if !e.busy.CompareAndSwap(false, true) {
		e.logger.Warn("export rejected", "invoice", inv.Number, "reason", "busy")
		return ErrExportInProgress
	}
	defer e.busy.Store(false)

	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	e.logger.Debug("export started", "invoice", inv.Number, "format", e.renderer.Ext(), "lines", len(inv.Lines))
	if err := fn(); err != nil {
		e.logger.Error("export failed", "invoice", inv.Number, "error", err)
		return fmt.Errorf("exporting invoice %s: %w", inv.Number, err)
	}
	e.logger.Info("invoice exported", "invoice", inv.Number, "elapsed", time.Since(start))
	return nil
}
