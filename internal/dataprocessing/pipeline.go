package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"etfgeo/internal/config"
	"etfgeo/internal/errors"
	"etfgeo/pkg/contracts/domain"
)

// ManualColumns carries an externally supplied column choice that bypasses
// automatic detection. Each value is a column name or a zero-based index.
type ManualColumns struct {
	Weight   string
	Location string
}

// Pipeline wires the full ingestion flow: parse, detect or apply manual
// columns, derive holding records, aggregate.
type Pipeline struct {
	logger     *slog.Logger
	parser     *Parser
	detector   *Detector
	processor  *Processor
	aggregator *Aggregator
}

// NewPipeline creates a pipeline with the given classification policy.
func NewPipeline(logger *slog.Logger, cfg config.ClassificationConfig) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		logger:     logger,
		parser:     NewParser(logger),
		detector:   NewDetector(logger),
		processor:  NewProcessor(logger, NewClassifier(cfg), NewNormalizer()),
		aggregator: NewAggregator(logger),
	}
}

// Run analyzes the holdings file at path and returns the per-country
// aggregate. When manual is non-nil its columns are used instead of
// automatic detection.
func (p *Pipeline) Run(ctx context.Context, path string, manual *ManualColumns) (*domain.CountryAggregate, error) {
	table, err := p.parser.Parse(ctx, path)
	if err != nil {
		return nil, err
	}

	var assignment domain.ColumnAssignment
	if manual != nil {
		assignment, err = resolveManualColumns(table, *manual)
		if err != nil {
			return nil, err
		}
		p.logger.InfoContext(ctx, "using manual column assignment",
			slog.String("weight_column", assignment.WeightColumn),
			slog.String("location_column", assignment.LocationColumn))
	} else {
		assignment, err = p.detector.Detect(ctx, table)
		if err != nil {
			return nil, err
		}
	}

	records, dropped, err := p.processor.Records(ctx, table, assignment)
	if err != nil {
		return nil, err
	}
	return p.aggregator.Aggregate(ctx, records, dropped)
}

// resolveManualColumns turns name-or-index values into a validated
// ColumnAssignment against the parsed table.
func resolveManualColumns(table *domain.RawTable, manual ManualColumns) (domain.ColumnAssignment, error) {
	weight, err := resolveColumn(table, manual.Weight)
	if err != nil {
		return domain.ColumnAssignment{}, errors.NewValidationError(fmt.Sprintf("weight column: %v", err))
	}
	location, err := resolveColumn(table, manual.Location)
	if err != nil {
		return domain.ColumnAssignment{}, errors.NewValidationError(fmt.Sprintf("location column: %v", err))
	}
	if weight == location {
		return domain.ColumnAssignment{}, errors.NewValidationError("weight and location columns must differ")
	}
	return domain.ColumnAssignment{WeightColumn: weight, LocationColumn: location}, nil
}

func resolveColumn(table *domain.RawTable, nameOrIndex string) (string, error) {
	if nameOrIndex == "" {
		return "", fmt.Errorf("no column given")
	}
	if table.ColumnIndex(nameOrIndex) >= 0 {
		return nameOrIndex, nil
	}
	if idx, err := strconv.Atoi(nameOrIndex); err == nil {
		if idx < 0 || idx >= len(table.Columns) {
			return "", fmt.Errorf("index %d out of range (table has %d columns)", idx, len(table.Columns))
		}
		return table.Columns[idx], nil
	}
	return "", fmt.Errorf("column %q not found", nameOrIndex)
}
