package valuation

import (
	"financeanalyst/pkg/core/assumption"
	"financeanalyst/pkg/core/projection"
)

// TerminalValue computes the value of all cash flows beyond the explicit
// horizon, as of the end of the final projected year. The method is a
// discriminated choice on a.TerminalMethod:
//
//   - Gordon growth: FCFF_final * (1 + tg) / (wacc - tg). When wacc <= tg
//     the result is +/-Inf or negative; that is a validation error, not a
//     panic, and it propagates through the bridge as-is.
//   - Exit multiple: final-year metric (EBITDA by default) * ExitMultiple.
func TerminalValue(final projection.Row, discountRate float64, a assumption.Assumptions) float64 {
	switch a.TerminalMethod {
	case assumption.TerminalExitMultiple:
		return exitMetricValue(final, a.ExitMetric) * a.ExitMultiple
	default:
		return final.FCFF * (1 + a.TerminalGrowth) / (discountRate - a.TerminalGrowth)
	}
}

// exitMetricValue selects the final-year line the multiple applies to.
func exitMetricValue(r projection.Row, metric assumption.ExitMetric) float64 {
	switch metric {
	case assumption.ExitMetricEBIT:
		return r.EBIT
	case assumption.ExitMetricRevenue:
		return r.Revenue
	case assumption.ExitMetricFCFF:
		return r.FCFF
	default:
		return r.EBITDA
	}
}
