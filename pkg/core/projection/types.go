// Package projection turns an assumption record into a year-by-year free
// cash flow to firm (FCFF) schedule. Each row depends only on the prior
// row's revenue and the assumptions; rows are plain values and are never
// mutated after construction.
package projection

import (
	"encoding/json"
	"math"
)

// Row is one projected year. Year is zero-based (Year 0 is the first
// projected year, one step after the base year).
type Row struct {
	Year         int     `json:"year"`
	GrowthRate   float64 `json:"growth_rate"`
	Revenue      float64 `json:"revenue"`
	EBITMargin   float64 `json:"ebit_margin"`
	EBIT         float64 `json:"ebit"`
	Depreciation float64 `json:"depreciation"`
	EBITDA       float64 `json:"ebitda"`
	NOPAT        float64 `json:"nopat"`
	Reinvestment float64 `json:"reinvestment"`
	FCFF         float64 `json:"fcff"`
}

// MarshalJSON encodes non-finite line items as null. Degenerate inputs
// (zero sales-to-capital, for one) flow through the schedule as Inf/NaN in
// process, and encoding/json refuses those outright.
func (row Row) MarshalJSON() ([]byte, error) {
	type wire struct {
		Year         int      `json:"year"`
		GrowthRate   *float64 `json:"growth_rate"`
		Revenue      *float64 `json:"revenue"`
		EBITMargin   *float64 `json:"ebit_margin"`
		EBIT         *float64 `json:"ebit"`
		Depreciation *float64 `json:"depreciation"`
		EBITDA       *float64 `json:"ebitda"`
		NOPAT        *float64 `json:"nopat"`
		Reinvestment *float64 `json:"reinvestment"`
		FCFF         *float64 `json:"fcff"`
	}
	finiteOrNil := func(f float64) *float64 {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return &f
	}
	return json.Marshal(wire{
		Year:         row.Year,
		GrowthRate:   finiteOrNil(row.GrowthRate),
		Revenue:      finiteOrNil(row.Revenue),
		EBITMargin:   finiteOrNil(row.EBITMargin),
		EBIT:         finiteOrNil(row.EBIT),
		Depreciation: finiteOrNil(row.Depreciation),
		EBITDA:       finiteOrNil(row.EBITDA),
		NOPAT:        finiteOrNil(row.NOPAT),
		Reinvestment: finiteOrNil(row.Reinvestment),
		FCFF:         finiteOrNil(row.FCFF),
	})
}
