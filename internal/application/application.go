package application

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/eugenenazirov/stock-cutter/internal/config"
	"github.com/eugenenazirov/stock-cutter/internal/cutlist"
	"github.com/eugenenazirov/stock-cutter/internal/packer"
	"github.com/eugenenazirov/stock-cutter/internal/report"
	"github.com/eugenenazirov/stock-cutter/internal/stock"
)

// App encapsulates the dependencies of a single planning run.
type App struct {
	cfg    config.Config
	stock  stock.Stock
	format report.Format
	packer packer.Packer
	logger *zap.Logger
}

// Option configures App behaviour.
type Option func(*App)

// WithPacker overrides the packing strategy, primarily for tests.
func WithPacker(p packer.Packer) Option {
	return func(a *App) {
		a.packer = p
	}
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	s, err := stock.New(cfg.StockLength, cfg.StockCount)
	if err != nil {
		return nil, fmt.Errorf("failed to apply stock settings: %w", err)
	}

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	app := &App{
		cfg:    cfg,
		stock:  s,
		format: format,
		packer: packer.New(),
		logger: logger,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app, nil
}

// Run collects the cut list, checks it against the available stock, packs
// it and writes the report to w. Insufficient stock stops the run before
// anything is packed or written.
func (a *App) Run(w io.Writer) error {
	a.logger.Info("stock loaded",
		zap.Int("stock_length", a.stock.Length()),
		zap.Int("stock_count", a.stock.Count()),
		zap.Int("stock_total", a.stock.Total()),
	)

	entries, err := a.loadEntries()
	if err != nil {
		return err
	}

	list, err := a.collect(entries)
	if err != nil {
		return err
	}

	cuts := list.Lengths()
	bins, err := a.packer.Pack(cuts, a.stock.Length())
	if err != nil {
		a.logger.Error("packing failed", zap.Error(err))
		return fmt.Errorf("pack cuts: %w", err)
	}

	plan := report.Build(a.stock, cuts, bins)
	a.logger.Info("plan complete",
		zap.String("plan_id", plan.Summary.ID),
		zap.Int("bins", plan.Summary.BinsUsed),
		zap.Int("min_bins", plan.Summary.MinBins),
		zap.Int("total_requested", plan.Summary.TotalRequested),
		zap.Int("total_used", plan.Summary.TotalUsed),
	)
	if plan.Summary.Shortfall > 0 {
		a.logger.Warn("plan uses more pieces than available",
			zap.Int("shortfall", plan.Summary.Shortfall),
		)
	}

	// The PDF goes first so a failed export leaves w untouched.
	if a.cfg.PDFPath != "" {
		if err := report.WritePDF(a.cfg.PDFPath, plan); err != nil {
			return fmt.Errorf("write PDF: %w", err)
		}
		a.logger.Info("PDF written", zap.String("path", a.cfg.PDFPath))
	}

	if err := report.Render(w, plan, a.format); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	return nil
}

// loadEntries reads the cuts file first, then appends entries given inline.
func (a *App) loadEntries() ([]cutlist.Entry, error) {
	var entries []cutlist.Entry

	if a.cfg.CutsFile != "" {
		result := cutlist.ImportFile(a.cfg.CutsFile)
		for _, warning := range result.Warnings {
			a.logger.Warn("cut list import", zap.String("warning", warning))
		}
		if err := result.Err(); err != nil {
			return nil, err
		}
		a.logger.Debug("cut list imported",
			zap.String("path", a.cfg.CutsFile),
			zap.Int("entries", len(result.Entries)),
		)
		entries = append(entries, result.Entries...)
	}

	if a.cfg.Cuts != "" {
		parsed, err := cutlist.ParseEntries(a.cfg.Cuts)
		if err != nil {
			return nil, fmt.Errorf("parse cuts: %w", err)
		}
		entries = append(entries, parsed...)
	}

	if len(entries) == 0 {
		return nil, cutlist.ErrEmpty
	}
	return entries, nil
}

// collect adds entries one at a time and re-checks the running total
// against the stock after each, so the entry that exhausts the stock is
// the one reported.
func (a *App) collect(entries []cutlist.Entry) (*cutlist.List, error) {
	list := &cutlist.List{}
	for _, entry := range entries {
		if err := list.Add(entry); err != nil {
			return nil, err
		}
		a.logger.Debug("cut entry added",
			zap.Stringer("entry", entry),
			zap.Int("running_total", list.Total()),
		)

		if err := a.stock.CheckTotal(list.Total()); err != nil {
			a.logger.Warn("not enough stock",
				zap.Stringer("entry", entry),
				zap.Int("requested", list.Total()),
				zap.Int("available", a.stock.Total()),
			)
			return nil, fmt.Errorf("cut %s: %w", entry, err)
		}
	}
	return list, nil
}
