package dataprocessing

import (
	"context"
	"log/slog"
	"strings"

	"etfgeo/internal/errors"
	"etfgeo/pkg/contracts/domain"
)

// Keyword sets scored against column names. Matching is case-insensitive
// substring matching; longer keywords weigh more so "Weight (%)" beats a
// column that merely contains "%".
var (
	weightKeywords   = []string{"weight", "allocation", "peso", "percent", "%"}
	locationKeywords = []string{"location", "country", "region", "geography", "nazione", "paese"}
)

// detectSampleSize caps how many non-empty values per column are inspected
// for the content check.
const detectSampleSize = 20

// Detector guesses which columns of a RawTable hold weights and locations.
type Detector struct {
	logger *slog.Logger
}

// NewDetector creates a new column detector.
func NewDetector(logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{logger: logger}
}

// Detect scores each column name against the weight and location keyword
// sets and confirms the guess against sampled cell content: the weight
// column must hold mostly numeric values, the location column mostly
// non-numeric ones. It fails with AmbiguousColumnsError when either
// candidate is missing; the caller may then supply a manual assignment.
func (d *Detector) Detect(ctx context.Context, table *domain.RawTable) (domain.ColumnAssignment, error) {
	weightCol := d.bestColumn(table, weightKeywords, mostlyNumeric)
	locationCol := d.bestColumn(table, locationKeywords, mostlyText)

	if weightCol == "" || locationCol == "" || weightCol == locationCol {
		d.logger.WarnContext(ctx, "column detection inconclusive",
			slog.String("weight_candidate", weightCol),
			slog.String("location_candidate", locationCol),
			slog.Any("available_columns", table.Columns))
		return domain.ColumnAssignment{}, &errors.AmbiguousColumnsError{
			AvailableColumns: table.Columns,
			WeightCandidate:  weightCol,
			LocCandidate:     locationCol,
		}
	}

	d.logger.InfoContext(ctx, "detected columns",
		slog.String("weight_column", weightCol),
		slog.String("location_column", locationCol))
	return domain.ColumnAssignment{WeightColumn: weightCol, LocationColumn: locationCol}, nil
}

// bestColumn returns the highest name-scoring column whose sampled content
// passes the given check, or "" when no column clears both bars. Earlier
// columns win score ties.
func (d *Detector) bestColumn(table *domain.RawTable, keywords []string, contentOK func([]string) bool) string {
	best := ""
	bestScore := 0
	for _, col := range table.Columns {
		score := nameScore(col, keywords)
		if score <= bestScore {
			continue
		}
		values := sampleValues(table, col)
		if len(values) == 0 || !contentOK(values) {
			continue
		}
		best = col
		bestScore = score
	}
	return best
}

// nameScore sums the lengths of all keywords contained in the column name,
// so more and longer keyword matches rank higher. Zero means no match.
func nameScore(column string, keywords []string) int {
	name := strings.ToLower(strings.TrimSpace(column))
	score := 0
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			score += len(kw)
		}
	}
	return score
}

// sampleValues collects up to detectSampleSize non-empty values of a column.
func sampleValues(table *domain.RawTable, column string) []string {
	var values []string
	for _, row := range table.Rows {
		v := row.Get(column)
		if v == "" {
			continue
		}
		values = append(values, v)
		if len(values) == detectSampleSize {
			break
		}
	}
	return values
}

// mostlyNumeric reports whether a majority of values parse as weights.
func mostlyNumeric(values []string) bool {
	numeric := 0
	for _, v := range values {
		if _, err := ParseWeight(v); err == nil {
			numeric++
		}
	}
	return numeric*2 > len(values)
}

// mostlyText reports whether a majority of values do not parse as weights.
func mostlyText(values []string) bool {
	text := 0
	for _, v := range values {
		if _, err := ParseWeight(v); err != nil {
			text++
		}
	}
	return text*2 > len(values)
}
