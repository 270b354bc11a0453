package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{
			name:     "parsing error type",
			errType:  ErrTypeParsing,
			expected: "PARSING",
		},
		{
			name:     "detection error type",
			errType:  ErrTypeDetection,
			expected: "DETECTION",
		},
		{
			name:     "validation error type",
			errType:  ErrTypeValidation,
			expected: "VALIDATION",
		},
		{
			name:     "aggregation error type",
			errType:  ErrTypeAggregation,
			expected: "AGGREGATION",
		},
		{
			name:     "storage error type",
			errType:  ErrTypeStorage,
			expected: "STORAGE",
		},
		{
			name:     "not found error type",
			errType:  ErrTypeNotFound,
			expected: "NOT_FOUND",
		},
		{
			name:     "config error type",
			errType:  ErrTypeConfig,
			expected: "CONFIG",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name: "error without cause",
			appError: &AppError{
				Type:    ErrTypeDetection,
				Message: "cannot identify weight column",
				Cause:   nil,
			},
			wantMessage: "[DETECTION] cannot identify weight column",
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeParsing,
				Message: "failed to read input",
				Cause:   fmt.Errorf("open holdings.csv: no such file"),
			},
			wantMessage: "[PARSING] failed to read input: open holdings.csv: no such file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	appErr := NewParsingError("wrapper", cause)

	require.ErrorIs(t, appErr, cause)
	assert.Equal(t, cause, appErr.Unwrap())
}

func TestAppError_WithContext(t *testing.T) {
	appErr := NewValidationError("ambiguous columns").
		WithContext("column_count", 4).
		WithContext("file", "holdings.csv")

	assert.Equal(t, 4, appErr.Context["column_count"])
	assert.Equal(t, "holdings.csv", appErr.Context["file"])
}

func TestAppError_ErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("processing failed: %w", NewStorageError("export failed", nil))

	var appErr *AppError
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, ErrTypeStorage, appErr.Type)
}

func TestHelperConstructors(t *testing.T) {
	cause := fmt.Errorf("cause")

	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
	}{
		{"parsing", NewParsingError("m", cause), ErrTypeParsing},
		{"storage", NewStorageError("m", cause), ErrTypeStorage},
		{"validation", NewValidationError("m"), ErrTypeValidation},
		{"not found", NewNotFoundError("input file"), ErrTypeNotFound},
		{"config", NewConfigError("m", cause), ErrTypeConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestParseError_ReportsAttempts(t *testing.T) {
	err := NewParseError("holdings.csv", []ParseAttempt{
		{Separator: ",", Encoding: "utf-8", Reason: "only 1 column"},
		{Separator: ";", Encoding: "latin-1", Reason: "no data rows"},
	})

	msg := err.Error()
	assert.Contains(t, msg, "holdings.csv")
	assert.Contains(t, msg, `sep=","`)
	assert.Contains(t, msg, "latin-1")
	assert.Contains(t, msg, "no data rows")
}

func TestAmbiguousColumnsError_ListsColumns(t *testing.T) {
	err := &AmbiguousColumnsError{
		AvailableColumns: []string{"Ticker", "Name", "Qty"},
	}

	msg := err.Error()
	assert.Contains(t, msg, "Ticker, Name, Qty")
	assert.Contains(t, msg, "DETECTION")
}

func TestEmptyAggregateError_Counts(t *testing.T) {
	err := &EmptyAggregateError{CashRows: 7, DroppedRows: 2}

	msg := err.Error()
	assert.Contains(t, msg, "7 cash rows")
	assert.Contains(t, msg, "2 rows dropped")
}
