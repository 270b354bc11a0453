package domain

import (
	"fmt"
	"strings"
)

// RawTable is the tabular structure produced by the ingestion parser.
// Columns holds the header names in file order; every row carries a value
// for every column (rows are padded or truncated during parsing to keep
// this invariant).
type RawTable struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`

	// Separator and Encoding record the combination that produced the table.
	Separator rune   `json:"-"`
	Encoding  string `json:"encoding"`

	// UnalignedRows counts rows whose field count did not match the header
	// and had to be padded or truncated. Diagnostic only.
	UnalignedRows int `json:"unaligned_rows,omitempty"`
}

// Row is a single record keyed by column name.
type Row map[string]string

// Get returns the trimmed value for the given column.
func (r Row) Get(column string) string {
	return strings.TrimSpace(r[column])
}

// ColumnAssignment names the weight-bearing and location-bearing columns of
// a RawTable. It is created once, by automatic detection or by manual
// override, and never mutated afterwards.
type ColumnAssignment struct {
	WeightColumn   string `json:"weight_column" validate:"required"`
	LocationColumn string `json:"location_column" validate:"required"`
}

// Validate checks that both assigned columns exist in the table.
func (a ColumnAssignment) Validate(table *RawTable) error {
	if !table.HasColumn(a.WeightColumn) {
		return fmt.Errorf("weight column %q not present in table", a.WeightColumn)
	}
	if !table.HasColumn(a.LocationColumn) {
		return fmt.Errorf("location column %q not present in table", a.LocationColumn)
	}
	return nil
}

// HasColumn reports whether the table contains the named column.
func (t *RawTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// ColumnIndex returns the position of the named column, or -1.
func (t *RawTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HoldingRecord is the per-row view derived from a RawTable row plus a
// ColumnAssignment. Rows whose weight field does not parse to a
// non-negative finite number never become HoldingRecords; they are dropped
// and counted.
type HoldingRecord struct {
	RawLocation        string  `json:"raw_location"`
	NormalizedLocation string  `json:"normalized_location"`
	Weight             float64 `json:"weight" validate:"min=0"`
	IsCash             bool    `json:"is_cash"`
}
