package errors

import (
	"fmt"
	"strings"
)

// ParseAttempt records the outcome of one (separator, encoding) parse try.
// Attempts are accumulated so a final ParseError can report everything that
// was tried before giving up.
type ParseAttempt struct {
	Separator string
	Encoding  string
	Reason    string
}

func (a ParseAttempt) String() string {
	return fmt.Sprintf("sep=%q enc=%s: %s", a.Separator, a.Encoding, a.Reason)
}

// ParseError means no separator/encoding combination nor the manual
// fallback produced a usable table. Fatal for the run.
type ParseError struct {
	Path     string
	Attempts []ParseAttempt
}

func (e *ParseError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.String())
	}
	return fmt.Sprintf("[%s] no parse strategy produced a usable table for %s (tried: %s)",
		ErrTypeParsing, e.Path, strings.Join(parts, "; "))
}

// NewParseError creates a ParseError with the attempts that were tried.
func NewParseError(path string, attempts []ParseAttempt) *ParseError {
	return &ParseError{Path: path, Attempts: attempts}
}

// AmbiguousColumnsError means automatic column detection could not settle
// on both a weight and a location column. Recoverable: the caller may
// supply a manual ColumnAssignment instead.
type AmbiguousColumnsError struct {
	AvailableColumns []string
	WeightCandidate  string
	LocCandidate     string
}

func (e *AmbiguousColumnsError) Error() string {
	return fmt.Sprintf("[%s] cannot identify columns (weight=%q location=%q, available: %s)",
		ErrTypeDetection, e.WeightCandidate, e.LocCandidate,
		strings.Join(e.AvailableColumns, ", "))
}

// EmptyAggregateError means classification and filtering left zero equity
// rows with positive weight. Fatal for the run: either the column mapping
// is wrong or the file holds no usable equity data.
type EmptyAggregateError struct {
	CashRows    int
	DroppedRows int
}

func (e *EmptyAggregateError) Error() string {
	return fmt.Sprintf("[%s] no equity rows with positive weight remain (%d cash rows excluded, %d rows dropped)",
		ErrTypeAggregation, e.CashRows, e.DroppedRows)
}
