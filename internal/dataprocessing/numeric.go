package dataprocessing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseWeight converts a textual weight field to a float64. It tolerates a
// trailing percent sign, thousands separators and a decimal comma
// ("1,234.56", "8,75" and "4.65%" all parse). The caller decides whether
// negative values are acceptable; NaN and infinities never are.
func ParseWeight(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	s = strings.ReplaceAll(s, " ", "")

	switch {
	case strings.Contains(s, ",") && strings.Contains(s, "."):
		// Comma is the thousands separator.
		s = strings.ReplaceAll(s, ",", "")
	case strings.Contains(s, ","):
		// A single comma followed by at most two digits is a decimal
		// comma; anything else is thousands grouping.
		if i := strings.LastIndex(s, ","); strings.Count(s, ",") == 1 && len(s)-i-1 <= 2 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("value %q is not finite", s)
	}
	return v, nil
}
