package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"etfgeo/internal/errors"
	"etfgeo/pkg/contracts"
	"etfgeo/pkg/contracts/domain"
)

// AllocationExporter writes country allocation reports to CSV or JSON.
type AllocationExporter struct {
	logger    *slog.Logger
	csvWriter *CSVWriter
}

// NewAllocationExporter creates a new allocation report exporter
func NewAllocationExporter(logger *slog.Logger) *AllocationExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &AllocationExporter{
		logger:    logger,
		csvWriter: NewCSVWriter(logger),
	}
}

// ExportCSV writes the aggregate as a CSV file with one row per country,
// highest percentage first.
func (e *AllocationExporter) ExportCSV(aggregate *domain.CountryAggregate, outputPath string) error {
	headers := []string{"Country", "Total_Weight", "Percentage"}

	records := make([][]string, 0, len(aggregate.Countries))
	for _, c := range aggregate.Countries {
		records = append(records, []string{
			c.Country,
			formatFloat(c.Weight),
			formatFloat(c.Percentage),
		})
	}

	if err := e.csvWriter.WriteSimpleCSV(outputPath, headers, records); err != nil {
		return errors.NewStorageError("failed to write allocation CSV", err)
	}

	e.logger.Info("Exported allocation CSV",
		slog.String("output_path", outputPath),
		slog.Int("countries", len(records)))
	return nil
}

// allocationDocument is the JSON export envelope.
type allocationDocument struct {
	FormatVersion     string                     `json:"format_version"`
	GeneratedAt       time.Time                  `json:"generated_at"`
	TotalWeight       float64                    `json:"total_weight"`
	Herfindahl        float64                    `json:"herfindahl"`
	Top3Concentration float64                    `json:"top3_concentration"`
	Top5Concentration float64                    `json:"top5_concentration"`
	EquityRows        int                        `json:"equity_rows"`
	CashRows          int                        `json:"cash_rows"`
	DroppedRows       int                        `json:"dropped_rows"`
	Countries         []domain.CountryAllocation `json:"countries"`
}

// ExportJSON writes the aggregate as an indented JSON document including the
// summary counts and concentration metrics.
func (e *AllocationExporter) ExportJSON(aggregate *domain.CountryAggregate, outputPath string) error {
	doc := allocationDocument{
		FormatVersion:     contracts.DataFormatVersion,
		GeneratedAt:       aggregate.GeneratedAt,
		TotalWeight:       aggregate.TotalWeight,
		Herfindahl:        aggregate.Herfindahl,
		Top3Concentration: aggregate.Top3Concentration,
		Top5Concentration: aggregate.Top5Concentration,
		EquityRows:        aggregate.EquityRows,
		CashRows:          aggregate.CashRows,
		DroppedRows:       aggregate.DroppedRows,
		Countries:         aggregate.Countries,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal allocation document: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewStorageError("failed to create output directory", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return errors.NewStorageError("failed to write allocation JSON", err)
	}

	e.logger.Info("Exported allocation JSON",
		slog.String("output_path", outputPath),
		slog.Int("countries", len(aggregate.Countries)))
	return nil
}

// Export dispatches on the configured output format. Format "none" skips
// the export entirely.
func (e *AllocationExporter) Export(aggregate *domain.CountryAggregate, outputPath, format string) error {
	switch format {
	case "csv":
		return e.ExportCSV(aggregate, outputPath)
	case "json":
		return e.ExportJSON(aggregate, outputPath)
	case "none", "":
		return nil
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}
