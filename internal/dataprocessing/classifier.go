package dataprocessing

import (
	"strings"
	"unicode"

	"etfgeo/internal/config"
	"etfgeo/pkg/contracts/domain"
)

// cashMarkers are matched as case-insensitive substrings of the inspected
// fields.
var cashMarkers = []string{"cash", "currency", "money market"}

// currencyCodes are ISO 4217 codes counted as cash evidence when they
// appear as a whole token (a ticker of "USD", a name like "EUR/USD FWD").
var currencyCodes = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true, "CHF": true,
	"CAD": true, "AUD": true, "NZD": true, "HKD": true, "SGD": true,
	"CNY": true, "CNH": true, "KRW": true, "TWD": true, "INR": true,
	"BRL": true, "ZAR": true, "MXN": true, "SEK": true, "NOK": true,
	"DKK": true, "PLN": true, "TRY": true, "THB": true, "IDR": true,
	"MYR": true, "PHP": true, "AED": true, "SAR": true, "ILS": true,
}

// auxiliaryKeywords select which columns are inspected for cash evidence
// besides the location column itself: ticker-, name-, sector- and asset
// class-like fields.
var auxiliaryKeywords = []string{"ticker", "symbol", "name", "sector", "asset", "class", "type", "description"}

// Classifier flags holdings rows as cash/currency positions. It is
// stateless after construction; IsCash is a pure function of its inputs.
type Classifier struct {
	favorEquity bool
}

// NewClassifier creates a classifier with the given policy. The default
// policy (FavorEquity false) resolves ambiguous evidence toward cash:
// under-counting cash is preferable to attributing it to a country.
func NewClassifier(cfg config.ClassificationConfig) *Classifier {
	return &Classifier{favorEquity: cfg.FavorEquity}
}

// IsCash reports whether the row is a cash or currency position. A row is
// cash when the location field is empty, or when the location field or any
// auxiliary field contains a cash marker, or - unless the favor-equity
// policy is set - when such a field contains a currency code as a whole
// token.
func (c *Classifier) IsCash(row domain.Row, assignment domain.ColumnAssignment) bool {
	if row.Get(assignment.LocationColumn) == "" {
		return true
	}

	for column := range row {
		if column != assignment.LocationColumn && !isAuxiliaryColumn(column) {
			continue
		}
		value := row.Get(column)
		if value == "" {
			continue
		}
		lower := strings.ToLower(value)
		for _, marker := range cashMarkers {
			if strings.Contains(lower, marker) {
				return true
			}
		}
		if !c.favorEquity && containsCurrencyToken(value) {
			return true
		}
	}
	return false
}

// isAuxiliaryColumn reports whether the column name looks ticker-, name-,
// sector- or asset class-like.
func isAuxiliaryColumn(column string) bool {
	name := strings.ToLower(column)
	for _, kw := range auxiliaryKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// containsCurrencyToken reports whether any whole letter-token of the value
// is an ISO 4217 currency code. Matching is case-insensitive.
func containsCurrencyToken(value string) bool {
	tokens := strings.FieldsFunc(value, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, token := range tokens {
		if currencyCodes[strings.ToUpper(token)] {
			return true
		}
	}
	return false
}
