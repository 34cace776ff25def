// Package validate classifies assumption problems into blocking errors and
// advisory warnings. It is the single source of truth for deciding that a
// numerically degenerate pipeline output is an input problem: the math core
// itself never throws. Check always returns a structured result, runs every
// rule independently, and never mutates the assumptions.
package validate

import (
	"fmt"
	"math"

	"financeanalyst/pkg/core/assumption"
	"financeanalyst/pkg/core/valuation"
)

// Severity separates blocking errors from advisory warnings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one violated rule. Code is stable and machine-matchable; Message
// is for display.
type Issue struct {
	Code     string   `json:"code"`
	Field    string   `json:"field"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Result is the full outcome of one validation pass.
type Result struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
	IsValid  bool    `json:"is_valid"`
}

// Check runs every rule against the assumptions. Callers decide whether to
// proceed when IsValid is false; computation is never blocked here.
func Check(a assumption.Assumptions) Result {
	var errs, warns []Issue

	addErr := func(code, field, msg string) {
		errs = append(errs, Issue{Code: code, Field: field, Severity: SeverityError, Message: msg})
	}
	addWarn := func(code, field, msg string) {
		warns = append(warns, Issue{Code: code, Field: field, Severity: SeverityWarning, Message: msg})
	}

	// --- Blocking errors ---

	if a.Years <= 0 {
		addErr("horizon_invalid", "years",
			fmt.Sprintf("projection horizon must be positive, got %d", a.Years))
	}
	if a.GrowthYears < 0 || a.GrowthYears > a.Years {
		addErr("growth_years_invalid", "growth_years",
			fmt.Sprintf("explicit growth period %d must lie within the %d-year horizon", a.GrowthYears, a.Years))
	}
	if a.BaseRevenue <= 0 || math.IsNaN(a.BaseRevenue) {
		addErr("base_revenue_invalid", "base_revenue",
			fmt.Sprintf("base revenue must be positive, got %v", a.BaseRevenue))
	}
	if a.SharesOutstanding <= 0 || math.IsNaN(a.SharesOutstanding) {
		addErr("shares_invalid", "shares_outstanding",
			fmt.Sprintf("shares outstanding must be positive, got %v", a.SharesOutstanding))
	}
	if a.TerminalMethod == assumption.TerminalGordon {
		if wacc := valuation.WACC(a); wacc <= a.TerminalGrowth {
			addErr("gordon_wacc_below_growth", "terminal_growth",
				fmt.Sprintf("Gordon method requires WACC (%.4f) above terminal growth (%.4f); the perpetuity is infinite or negative", wacc, a.TerminalGrowth))
		}
	}
	if a.ReinvestmentMethod == assumption.ReinvestSalesToCapital && a.SalesToCapital == 0 {
		addErr("sales_to_capital_zero", "sales_to_capital",
			"sales-to-capital of zero divides the reinvestment by zero")
	}

	// --- Advisory warnings ---

	if a.CurrentPrice <= 0 {
		addWarn("price_nonpositive", "current_price",
			fmt.Sprintf("market price %v makes margin of safety unreliable", a.CurrentPrice))
	}
	if a.ReinvestmentMethod == assumption.ReinvestSalesToCapital &&
		a.SalesToCapital != 0 && a.SalesToCapital < 0.5 {
		addWarn("sales_to_capital_low", "sales_to_capital",
			fmt.Sprintf("sales-to-capital %v implies unrealistic reinvestment intensity", a.SalesToCapital))
	}
	if a.EBITMarginT > 0.4 {
		addWarn("terminal_margin_high", "ebit_margin_t",
			fmt.Sprintf("terminal EBIT margin %.0f%% is rarely sustainable", a.EBITMarginT*100))
	}
	if a.TerminalMethod == assumption.TerminalExitMultiple && a.ExitMultiple > 20 {
		addWarn("exit_multiple_high", "exit_multiple",
			fmt.Sprintf("exit multiple %vx is aggressive", a.ExitMultiple))
	}
	if a.RiskFree < 0 {
		addWarn("risk_free_negative", "risk_free",
			fmt.Sprintf("negative risk-free rate %v", a.RiskFree))
	}
	if sum := a.WeightEquity + a.WeightDebt; math.Abs(sum-1) > 1e-6 {
		addWarn("weights_not_normalized", "weight_equity",
			fmt.Sprintf("capital weights sum to %v, expected 1", sum))
	}
	if a.TaxRate < 0 || a.TaxRate >= 1 {
		addWarn("tax_rate_range", "tax_rate",
			fmt.Sprintf("tax rate %v outside [0, 1)", a.TaxRate))
	}

	return Result{
		Errors:   errs,
		Warnings: warns,
		IsValid:  len(errs) == 0,
	}
}

// HasCode reports whether any issue in the slice carries the code.
func HasCode(issues []Issue, code string) bool {
	for _, is := range issues {
		if is.Code == code {
			return true
		}
	}
	return false
}
