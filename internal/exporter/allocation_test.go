package exporter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "etfgeo/internal/errors"
	"etfgeo/pkg/contracts"
	"etfgeo/pkg/contracts/domain"
)

func sampleAggregate() *domain.CountryAggregate {
	return &domain.CountryAggregate{
		Countries: []domain.CountryAllocation{
			{Country: "Taiwan", Weight: 8.75, Percentage: 65.29850746268657},
			{Country: "China", Weight: 4.65, Percentage: 34.70149253731343},
		},
		TotalWeight:       13.4,
		Herfindahl:        5467.397,
		Top3Concentration: 100,
		Top5Concentration: 100,
		EquityRows:        2,
		CashRows:          1,
		DroppedRows:       0,
		DistinctCountries: 2,
		GeneratedAt:       time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

func TestAllocationExporter_ExportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "country_allocation.csv")

	err := NewAllocationExporter(nil).ExportCSV(sampleAggregate(), path)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	// BOM then header then countries sorted by percentage descending.
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, content[:3])
	lines := strings.Split(strings.TrimSpace(string(content[3:])), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Country,Total_Weight,Percentage", lines[0])
	assert.Equal(t, "Taiwan,8.75,65.30", lines[1])
	assert.Equal(t, "China,4.65,34.70", lines[2])
}

func TestAllocationExporter_ExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "country_allocation.json")

	err := NewAllocationExporter(nil).ExportJSON(sampleAggregate(), path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc allocationDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, contracts.DataFormatVersion, doc.FormatVersion)
	assert.InDelta(t, 13.4, doc.TotalWeight, 1e-9)
	assert.Equal(t, 2, doc.EquityRows)
	assert.Equal(t, 1, doc.CashRows)
	require.Len(t, doc.Countries, 2)
	assert.Equal(t, "Taiwan", doc.Countries[0].Country)
}

func TestAllocationExporter_ExportDispatch(t *testing.T) {
	tempDir := t.TempDir()
	exp := NewAllocationExporter(nil)
	agg := sampleAggregate()

	tests := []struct {
		name        string
		format      string
		file        string
		expectError bool
		expectFile  bool
	}{
		{name: "csv", format: "csv", file: "out.csv", expectFile: true},
		{name: "json", format: "json", file: "out.json", expectFile: true},
		{name: "none skips export", format: "none", file: "skipped.csv"},
		{name: "empty format skips export", format: "", file: "skipped2.csv"},
		{name: "unknown format fails", format: "xlsx", file: "out.xlsx", expectError: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tempDir, tt.file)
			err := exp.Export(agg, path, tt.format)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			_, statErr := os.Stat(path)
			if tt.expectFile {
				assert.NoError(t, statErr)
			} else {
				assert.True(t, os.IsNotExist(statErr))
			}
		})
	}
}

func TestAllocationExporter_WriteFailureIsStorageError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	// The parent of the output path is a regular file, so directory
	// creation must fail.
	exp := NewAllocationExporter(nil)
	for _, format := range []string{"csv", "json"} {
		t.Run(format, func(t *testing.T) {
			err := exp.Export(sampleAggregate(), filepath.Join(blocker, "out."+format), format)
			require.Error(t, err)

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperrors.ErrTypeStorage, appErr.Type)
		})
	}
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, sampleAggregate()))

	out := buf.String()
	assert.Contains(t, out, "Country Allocation")
	assert.Contains(t, out, "Taiwan")
	assert.Contains(t, out, "65.30%")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "Top 5 concentration: 100.00%")
	assert.Contains(t, out, "Rows: 2 equity, 1 cash, 0 dropped")

	// Countries appear in percentage order, highest first.
	assert.Less(t, strings.Index(out, "Taiwan"), strings.Index(out, "China"))
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "13.40", formatFloat(13.4))
	assert.Equal(t, "65.30", formatFloat(65.29850746268657))
	assert.Equal(t, "0.00", formatFloat(0))
	assert.Equal(t, "100.00", formatFloat(100))
}
