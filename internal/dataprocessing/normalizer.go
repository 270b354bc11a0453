package dataprocessing

import (
	"sort"
	"strings"
)

// countryAliases maps lowercase raw spellings to canonical country names.
// Every canonical name also maps to itself so normalization is idempotent.
// The table is read-only after package initialization.
var countryAliases = map[string]string{
	"south korea":                "South Korea",
	"korea (south)":              "South Korea",
	"korea, republic of":         "South Korea",
	"republic of korea":          "South Korea",
	"hong kong":                  "Hong Kong",
	"hong kong sar":              "Hong Kong",
	"hong kong (china)":          "Hong Kong",
	"united states":              "United States",
	"united states of america":   "United States",
	"usa":                        "United States",
	"u.s.a.":                     "United States",
	"united kingdom":             "United Kingdom",
	"great britain":              "United Kingdom",
	"uk":                         "United Kingdom",
	"china":                      "China",
	"mainland china":             "China",
	"china (mainland)":           "China",
	"people's republic of china": "China",
	"taiwan":                     "Taiwan",
	"taiwan (province of china)": "Taiwan",
	"chinese taipei":             "Taiwan",
	"russia":                     "Russia",
	"russian federation":         "Russia",
	"vietnam":                    "Vietnam",
	"viet nam":                   "Vietnam",
	"czech republic":             "Czech Republic",
	"czechia":                    "Czech Republic",
	"netherlands":                "Netherlands",
	"the netherlands":            "Netherlands",
	"holland":                    "Netherlands",
	"united arab emirates":       "United Arab Emirates",
	"uae":                        "United Arab Emirates",
	"ivory coast":                "Ivory Coast",
	"cote d'ivoire":              "Ivory Coast",
	"côte d'ivoire":              "Ivory Coast",
	"macau":                      "Macau",
	"macao":                      "Macau",
}

// minSubstringKeyLen keeps very short alias keys ("uk", "usa") out of the
// substring pass, where they would fire inside unrelated names such as
// "Ukraine".
const minSubstringKeyLen = 4

// Normalizer canonicalizes country-name spellings. Normalize is pure and
// deterministic; the Aggregator relies on its output as grouping keys.
type Normalizer struct {
	aliases       map[string]string
	substringKeys []string
}

// NewNormalizer creates a normalizer backed by the static alias table.
func NewNormalizer() *Normalizer {
	keys := make([]string, 0, len(countryAliases))
	for k := range countryAliases {
		if len(k) >= minSubstringKeyLen {
			keys = append(keys, k)
		}
	}
	// Longest keys first so the most specific alias wins; alphabetical
	// within a length to keep the pass deterministic.
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return &Normalizer{aliases: countryAliases, substringKeys: keys}
}

// Normalize trims the raw location, resolves it through the alias table
// (exact match first, then substring match), and passes unknown names
// through unchanged.
func (n *Normalizer) Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	lower := strings.ToLower(s)
	if canonical, ok := n.aliases[lower]; ok {
		return canonical
	}
	for _, key := range n.substringKeys {
		if strings.Contains(lower, key) {
			return n.aliases[key]
		}
	}
	return s
}
