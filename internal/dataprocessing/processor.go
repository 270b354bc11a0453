package dataprocessing

import (
	"context"
	"log/slog"

	"etfgeo/internal/errors"
	"etfgeo/pkg/contracts/domain"
)

// Processor derives HoldingRecords from a RawTable by combining the weight
// conversion, country normalization and cash classification steps.
type Processor struct {
	logger     *slog.Logger
	classifier *Classifier
	normalizer *Normalizer
}

// NewProcessor creates a processor using the given classifier and normalizer.
func NewProcessor(logger *slog.Logger, classifier *Classifier, normalizer *Normalizer) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{logger: logger, classifier: classifier, normalizer: normalizer}
}

// Records converts every table row into a HoldingRecord. Rows whose weight
// field does not parse to a non-negative finite number are dropped with a
// warning; the second return value counts them. One bad row never aborts
// the run.
func (p *Processor) Records(ctx context.Context, table *domain.RawTable, assignment domain.ColumnAssignment) ([]domain.HoldingRecord, int, error) {
	if err := assignment.Validate(table); err != nil {
		return nil, 0, errors.NewValidationError(err.Error())
	}

	records := make([]domain.HoldingRecord, 0, len(table.Rows))
	dropped := 0
	for i, row := range table.Rows {
		weightText := row.Get(assignment.WeightColumn)
		weight, err := ParseWeight(weightText)
		if err != nil || weight < 0 {
			dropped++
			p.logger.WarnContext(ctx, "dropping row with unusable weight",
				slog.Int("row", i+1),
				slog.String("weight_value", weightText))
			continue
		}

		rawLocation := row.Get(assignment.LocationColumn)
		records = append(records, domain.HoldingRecord{
			RawLocation:        rawLocation,
			NormalizedLocation: p.normalizer.Normalize(rawLocation),
			Weight:             weight,
			IsCash:             p.classifier.IsCash(row, assignment),
		})
	}

	if dropped > 0 {
		p.logger.InfoContext(ctx, "rows dropped during conversion",
			slog.Int("dropped", dropped),
			slog.Int("converted", len(records)))
	}
	return records, dropped, nil
}
