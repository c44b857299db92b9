package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/stock-cutter/internal/application"
	"github.com/eugenenazirov/stock-cutter/internal/config"
	"github.com/eugenenazirov/stock-cutter/internal/logging"
	"github.com/eugenenazirov/stock-cutter/internal/stock"
)

const (
	exitOK = iota
	exitError
	exitInsufficientStock
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	kingpinApp := kingpin.New("cutplan", "Stock Cutter - plans how to cut a list of lengths from fixed-length stock")
	kingpinApp.ErrorWriter(stderr)
	kingpinApp.UsageWriter(stderr)

	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()

	var lengthSet, countSet bool
	stockLength := kingpinApp.Flag("stock-length", "Length of one stock piece, e.g. 6000 for 6m bars").IsSetByUser(&lengthSet).Int()
	stockCount := kingpinApp.Flag("stock-count", "Number of stock pieces on hand").IsSetByUser(&countSet).Int()
	cuts := kingpinApp.Flag("cuts", "Comma-separated cuts as LENGTHxQTY, e.g. 1200x4,800x2,350").String()
	cutsFile := kingpinApp.Flag("cuts-file", "CSV or XLSX file with length and quantity columns").String()
	format := kingpinApp.Flag("format", "Report format: text or json").String()
	pdfPath := kingpinApp.Flag("pdf", "Also write a PDF cut sheet to this path").String()
	logLevel := kingpinApp.Flag("log-level", "Log level: debug, info, warn, error").String()

	if _, err := kingpinApp.Parse(args); err != nil {
		fmt.Fprintf(stderr, "cutplan: %v\n", err)
		return exitError
	}

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
		Cuts:       cuts,
		CutsFile:   cutsFile,
		Format:     format,
		PDFPath:    pdfPath,
		LogLevel:   logLevel,
	}

	if lengthSet {
		overrides.StockLength = stockLength
	}

	if countSet {
		overrides.StockCount = stockCount
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		fmt.Fprintf(stderr, "cutplan: failed to load configuration: %v\n", err)
		return exitError
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "cutplan: failed to initialize logger: %v\n", err)
		return exitError
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", zap.Error(err))
		return exitError
	}

	if err := app.Run(stdout); err != nil {
		if errors.Is(err, stock.ErrInsufficientStock) {
			fmt.Fprintf(stderr, "Not enough stock: %v\n", err)
			return exitInsufficientStock
		}
		logger.Error("planning failed", zap.Error(err))
		return exitError
	}

	return exitOK
}
