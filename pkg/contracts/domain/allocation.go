package domain

import "time"

// CountryAllocation is one aggregated row of the final report: the total
// raw weight and resulting percentage attributed to a single normalized
// country name.
type CountryAllocation struct {
	Country    string  `json:"country" csv:"Country" validate:"required"`
	Weight     float64 `json:"total_weight" csv:"Total_Weight" validate:"min=0"`
	Percentage float64 `json:"percentage" csv:"Percentage" validate:"min=0,max=100"`
}

// CountryAggregate is the complete output of an aggregation run. Countries
// are ordered by percentage descending, ties broken by name ascending, so
// the slice order is deterministic for identical inputs.
type CountryAggregate struct {
	Countries []CountryAllocation `json:"countries" validate:"dive"`

	// TotalWeight is the summed raw weight of all included equity rows.
	TotalWeight float64 `json:"total_weight"`

	// Herfindahl is the concentration index: the sum of squared country
	// percentages, on the 0-10000 scale that follows from percentages
	// expressed as 0-100 values.
	Herfindahl float64 `json:"herfindahl"`

	// Top3Concentration and Top5Concentration are the cumulative
	// percentages of the three and five largest country allocations.
	Top3Concentration float64 `json:"top3_concentration"`
	Top5Concentration float64 `json:"top5_concentration"`

	// EquityRows counts the holdings included in the aggregate.
	EquityRows int `json:"equity_rows"`
	// CashRows counts the holdings excluded as cash or currency positions.
	CashRows int `json:"cash_rows"`
	// DroppedRows counts rows discarded because their weight field did not
	// parse; these never reached classification.
	DroppedRows int `json:"dropped_rows"`
	// DistinctCountries is len(Countries), carried for serialized output.
	DistinctCountries int `json:"distinct_countries"`

	GeneratedAt time.Time `json:"generated_at"`
}

// TopN returns the cumulative percentage held by the n largest country
// allocations. If fewer than n countries exist, the full sum is returned.
func (a *CountryAggregate) TopN(n int) float64 {
	if n > len(a.Countries) {
		n = len(a.Countries)
	}
	var sum float64
	for _, c := range a.Countries[:n] {
		sum += c.Percentage
	}
	return sum
}
