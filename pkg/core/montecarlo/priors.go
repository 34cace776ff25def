// Package montecarlo draws assumption samples from triangular priors, runs
// the full valuation pipeline per draw, and aggregates the per-share outcomes
// into a distribution. Runs are seeded and fully reproducible; the engine
// holds no ambient state and is safe to call from a background worker.
package montecarlo

import (
	"fmt"

	"financeanalyst/pkg/core/assumption"
)

// Prior is a triangular prior over one assumption variable. Variable names
// are the same field names the sensitivity engine uses (including derived
// "wacc").
type Prior struct {
	Variable string  `json:"variable"`
	Min      float64 `json:"min"`
	Mode     float64 `json:"mode"`
	Max      float64 `json:"max"`
}

// Validate checks the triangle is well formed.
func (p Prior) Validate() error {
	if !(p.Min <= p.Mode && p.Mode <= p.Max) {
		return fmt.Errorf("prior %s: need min <= mode <= max, got (%v, %v, %v)",
			p.Variable, p.Min, p.Mode, p.Max)
	}
	if p.Min == p.Max {
		return fmt.Errorf("prior %s: degenerate triangle, min == max == %v", p.Variable, p.Min)
	}
	return nil
}

// GeneratePriors derives default triangular priors from the current scenario:
// mode at the current value, bounds at a fixed spread per variable. A
// convenience default for the workbench UI, not a constraint on callers.
func GeneratePriors(a assumption.Assumptions) []Prior {
	spread := func(center, delta float64) Prior {
		return Prior{Min: center - delta, Mode: center, Max: center + delta}
	}

	growth := spread(a.RevenueGrowth, 0.03)
	growth.Variable = "revenue_growth"

	margin := spread(a.EBITMarginT, 0.03)
	margin.Variable = "ebit_margin_t"

	wacc := Prior{Variable: "wacc_shift", Min: a.WACCShift - 0.015, Mode: a.WACCShift, Max: a.WACCShift + 0.015}

	s2c := spread(a.SalesToCapital, 0.75)
	s2c.Variable = "sales_to_capital"

	tg := spread(a.TerminalGrowth, 0.01)
	tg.Variable = "terminal_growth"

	return []Prior{growth, margin, wacc, s2c, tg}
}
