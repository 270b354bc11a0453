// Command allocation-report analyzes an ETF holdings export and prints the
// fund's weight allocation per country.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"etfgeo/internal/config"
	"etfgeo/internal/dataprocessing"
	apperrors "etfgeo/internal/errors"
	"etfgeo/internal/exporter"
	"etfgeo/internal/files"
	"etfgeo/internal/infrastructure"
	"etfgeo/pkg/contracts"
)

func main() {
	inputPath := flag.String("in", "", "holdings file or directory to analyze (defaults to config input.file)")
	outputPath := flag.String("out", "", "export destination (defaults to config output.file)")
	format := flag.String("format", "", "export format: csv, json or none (defaults to config output.format)")
	weightCol := flag.String("weight-col", "", "weight column name or zero-based index, bypasses detection")
	locCol := flag.String("loc-col", "", "location column name or zero-based index, bypasses detection")
	configFile := flag.String("config", "", "config file path (defaults to "+config.DefaultConfigFile+")")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.WithRunID(context.Background(), uuid.New().String())

	inputFromConfig := *inputPath == ""
	if inputFromConfig {
		*inputPath = cfg.Input.File
	}
	if *outputPath == "" {
		*outputPath = cfg.Output.File
	}
	if *format == "" {
		*format = cfg.Output.Format
	}

	if (*weightCol == "") != (*locCol == "") {
		logger.ErrorContext(ctx, "-weight-col and -loc-col must be given together")
		os.Exit(1)
	}

	// A missing configured default falls back to discovery in its
	// directory; an explicitly given path must exist as-is.
	discovery := files.NewDiscovery("")
	var holdingsPath string
	if inputFromConfig {
		holdingsPath, err = discovery.ResolveDefaultInput(*inputPath)
	} else {
		holdingsPath, err = discovery.ResolveInput(*inputPath)
	}
	if err != nil {
		logger.ErrorContext(ctx, "No holdings file to analyze",
			"input", *inputPath, "error", err)
		os.Exit(1)
	}
	logger.InfoContext(ctx, "Analyzing holdings file", "path", holdingsPath)

	var manual *dataprocessing.ManualColumns
	if *weightCol != "" {
		manual = &dataprocessing.ManualColumns{Weight: *weightCol, Location: *locCol}
	}

	pipeline := dataprocessing.NewPipeline(logger, cfg.Classification)
	aggregate, err := pipeline.Run(ctx, holdingsPath, manual)
	if err != nil {
		reportFailure(ctx, logger, err)
		os.Exit(1)
	}

	if err := exporter.WriteReport(os.Stdout, aggregate); err != nil {
		logger.ErrorContext(ctx, "Failed to render report", "error", err)
		os.Exit(1)
	}

	exp := exporter.NewAllocationExporter(logger)
	if err := exp.Export(aggregate, *outputPath, *format); err != nil {
		logger.ErrorContext(ctx, "Failed to export allocation", "error", err)
		os.Exit(1)
	}
	if *format != "none" {
		fmt.Printf("\nExported %s report to %s\n", *format, *outputPath)
	}
}

// reportFailure logs a pipeline error and, where the error carries enough
// context, prints a hint for the user.
func reportFailure(ctx context.Context, logger *slog.Logger, err error) {
	var ambiguous *apperrors.AmbiguousColumnsError
	if errors.As(err, &ambiguous) {
		logger.ErrorContext(ctx, "Could not detect weight and location columns", "error", err)
		fmt.Fprintln(os.Stderr, "Available columns:")
		for i, col := range ambiguous.AvailableColumns {
			fmt.Fprintf(os.Stderr, "  [%d] %s\n", i, col)
		}
		fmt.Fprintln(os.Stderr, "Re-run with -weight-col and -loc-col to pick them manually.")
		return
	}

	var empty *apperrors.EmptyAggregateError
	if errors.As(err, &empty) {
		logger.ErrorContext(ctx, "No equity rows left to aggregate",
			"cash_rows", empty.CashRows, "dropped_rows", empty.DroppedRows)
		return
	}

	logger.ErrorContext(ctx, "Analysis failed", "error", err)
}
