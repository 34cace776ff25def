// Package valuation implements the discounting half of the pipeline: cost of
// capital, terminal value, and the equity bridge from enterprise value to a
// per-share number. All functions are pure and total for well-typed input;
// economically broken inputs come back as NaN/Inf rather than errors, and
// the validate package decides what to surface.
package valuation

import "financeanalyst/pkg/core/assumption"

// WACCBreakdown exposes the intermediate cost-of-capital components for the
// API and CLI layers.
type WACCBreakdown struct {
	CostOfEquity float64 `json:"cost_of_equity"`
	CostOfDebt   float64 `json:"cost_of_debt"` // after-tax
	WeightEquity float64 `json:"weight_equity"`
	WeightDebt   float64 `json:"weight_debt"`
	Shift        float64 `json:"shift"`
	WACC         float64 `json:"wacc"`
}

// CostOfEquity returns Ke from CAPM (Rf + beta * ERP) or the manual override,
// depending on the configured mode.
func CostOfEquity(a assumption.Assumptions) float64 {
	if a.CostOfEquityMode == assumption.CostOfEquityManual {
		return a.CostOfEquity
	}
	return a.RiskFree + a.Beta*a.EquityRiskPrem
}

// CalculateWACC computes the full cost-of-capital breakdown.
// Weights are taken as given; validation warns when we + wd drifts from 1.
func CalculateWACC(a assumption.Assumptions) WACCBreakdown {
	ke := CostOfEquity(a)
	kd := a.CostOfDebt * (1 - a.TaxRate)
	wacc := a.WeightEquity*ke + a.WeightDebt*kd + a.WACCShift

	return WACCBreakdown{
		CostOfEquity: ke,
		CostOfDebt:   kd,
		WeightEquity: a.WeightEquity,
		WeightDebt:   a.WeightDebt,
		Shift:        a.WACCShift,
		WACC:         wacc,
	}
}

// WACC is the scalar discount rate used by the rest of the pipeline.
func WACC(a assumption.Assumptions) float64 {
	return CalculateWACC(a).WACC
}
