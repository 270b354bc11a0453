package dataprocessing

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"etfgeo/internal/errors"
	"etfgeo/pkg/contracts/domain"
)

// Aggregator sums equity weight per normalized country and computes the
// percentage breakdown and concentration metrics.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates a new aggregator.
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger}
}

// Aggregate filters to non-cash records with positive weight, groups them
// by normalized country and computes percentages, the Herfindahl index and
// top-3/top-5 concentration. Countries are sorted by percentage descending,
// name ascending on ties. droppedRows is carried through into the summary
// counts. It fails with EmptyAggregateError when no equity weight remains.
func (a *Aggregator) Aggregate(ctx context.Context, records []domain.HoldingRecord, droppedRows int) (*domain.CountryAggregate, error) {
	weights := make(map[string]float64)
	equityRows, cashRows := 0, 0
	for _, record := range records {
		if record.IsCash {
			cashRows++
			continue
		}
		if record.Weight <= 0 {
			continue
		}
		equityRows++
		weights[record.NormalizedLocation] += record.Weight
	}

	if len(weights) == 0 {
		a.logger.WarnContext(ctx, "no equity rows remain after classification",
			slog.Int("cash_rows", cashRows),
			slog.Int("dropped_rows", droppedRows))
		return nil, &errors.EmptyAggregateError{CashRows: cashRows, DroppedRows: droppedRows}
	}

	sums := make([]float64, 0, len(weights))
	for _, w := range weights {
		sums = append(sums, w)
	}
	total, err := stats.Sum(sums)
	if err != nil || total <= 0 {
		return nil, &errors.EmptyAggregateError{CashRows: cashRows, DroppedRows: droppedRows}
	}

	countries := make([]domain.CountryAllocation, 0, len(weights))
	squares := make([]float64, 0, len(weights))
	for country, weight := range weights {
		pct := 100 * weight / total
		countries = append(countries, domain.CountryAllocation{
			Country:    country,
			Weight:     weight,
			Percentage: pct,
		})
		squares = append(squares, pct*pct)
	}
	sort.Slice(countries, func(i, j int) bool {
		if countries[i].Percentage != countries[j].Percentage {
			return countries[i].Percentage > countries[j].Percentage
		}
		return countries[i].Country < countries[j].Country
	})
	herfindahl, _ := stats.Sum(squares)

	aggregate := &domain.CountryAggregate{
		Countries:         countries,
		TotalWeight:       total,
		Herfindahl:        herfindahl,
		EquityRows:        equityRows,
		CashRows:          cashRows,
		DroppedRows:       droppedRows,
		DistinctCountries: len(countries),
		GeneratedAt:       time.Now(),
	}
	aggregate.Top3Concentration = aggregate.TopN(3)
	aggregate.Top5Concentration = aggregate.TopN(5)

	a.logger.InfoContext(ctx, "aggregated country allocation",
		slog.Int("countries", len(countries)),
		slog.Int("equity_rows", equityRows),
		slog.Int("cash_rows", cashRows),
		slog.Int("dropped_rows", droppedRows),
		slog.Float64("herfindahl", herfindahl))
	return aggregate, nil
}
