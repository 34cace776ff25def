// Package pipeline chains growth vector, projection, and equity bridge into
// the single pure function the sensitivity and Monte Carlo engines repeat.
// It owns no state; identical assumptions always produce identical results,
// and it is safe to call from any goroutine.
package pipeline

import (
	"financeanalyst/pkg/core/assumption"
	"financeanalyst/pkg/core/projection"
	"financeanalyst/pkg/core/valuation"
)

// Run executes the full valuation pipeline for one assumption set.
func Run(a assumption.Assumptions) valuation.Result {
	res, _ := RunRows(a)
	return res
}

// RunRows is Run plus the projection schedule, for callers that render the
// year-by-year table alongside the result.
func RunRows(a assumption.Assumptions) (valuation.Result, []projection.Row) {
	growth := projection.GrowthVector(a.RevenueGrowth, a.TerminalGrowth, a.Years, a.GrowthYears)
	rows := projection.Project(a, growth)
	return valuation.ValueEquity(a, rows), rows
}

// Override clones a with one named field replaced. It extends
// assumption.Override with one derived field: "wacc" sets WACCShift so the
// resulting absolute discount rate equals value, which lets sensitivity axes
// and priors address the discount rate directly.
func Override(a assumption.Assumptions, field string, value float64) (assumption.Assumptions, error) {
	if field == "wacc" {
		unshifted := a
		unshifted.WACCShift = 0
		return a.Override("wacc_shift", value-valuation.WACC(unshifted))
	}
	return a.Override(field, value)
}
