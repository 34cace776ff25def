// Package assumption defines the flat assumption record that drives the
// valuation workbench. Syncs with the frontend assumption store: every field
// the UI edits lives here, and every recompute downstream consumes a value
// copy of this record. The core never mutates an Assumptions in place;
// Override returns a fresh copy with one field replaced.
package assumption

import "fmt"

// =============================================================================
// DISCRIMINATED CHOICES
// =============================================================================

// ReinvestmentMethod selects how reinvestment is derived from the projection.
type ReinvestmentMethod string

const (
	ReinvestSalesToCapital ReinvestmentMethod = "salesToCapital"
	ReinvestPercentOfSales ReinvestmentMethod = "percentOfSales"
)

// TerminalMethod selects the terminal value computation.
type TerminalMethod string

const (
	TerminalGordon       TerminalMethod = "gordon"
	TerminalExitMultiple TerminalMethod = "exitMultiple"
)

// CostOfEquityMode selects CAPM versus a manual cost-of-equity override.
type CostOfEquityMode string

const (
	CostOfEquityCAPM   CostOfEquityMode = "capm"
	CostOfEquityManual CostOfEquityMode = "manual"
)

// ExitMetric names the final-year line the exit multiple is applied to.
type ExitMetric string

const (
	ExitMetricEBITDA  ExitMetric = "ebitda"
	ExitMetricEBIT    ExitMetric = "ebit"
	ExitMetricRevenue ExitMetric = "revenue"
	ExitMetricFCFF    ExitMetric = "fcff"
)

// =============================================================================
// ASSUMPTIONS RECORD
// =============================================================================

// Assumptions is the single flat configuration record for one scenario.
// All rates are fractions (0.08 = 8%); monetary values share one currency.
type Assumptions struct {
	// Company / market context
	Currency          string  `json:"currency" yaml:"currency"`
	SharesOutstanding float64 `json:"shares_outstanding" yaml:"shares_outstanding"`
	CurrentPrice      float64 `json:"current_price" yaml:"current_price"`
	NetDebt           float64 `json:"net_debt" yaml:"net_debt"`
	MinorityInterest  float64 `json:"minority_interest" yaml:"minority_interest"`
	CashAdjustment    float64 `json:"cash_adjustment" yaml:"cash_adjustment"`

	// Projection horizon
	BaseRevenue float64 `json:"base_revenue" yaml:"base_revenue"` // last reported revenue (rev0)
	Years       int     `json:"years" yaml:"years"`               // total projection horizon
	GrowthYears int     `json:"growth_years" yaml:"growth_years"` // explicit high-growth period

	// Operating assumptions
	RevenueGrowth float64 `json:"revenue_growth" yaml:"revenue_growth"` // high-growth rate
	TaxRate       float64 `json:"tax_rate" yaml:"tax_rate"`
	EBITMargin0   float64 `json:"ebit_margin_0" yaml:"ebit_margin_0"` // year-0 margin
	EBITMarginT   float64 `json:"ebit_margin_t" yaml:"ebit_margin_t"` // terminal margin

	// Reinvestment
	ReinvestmentMethod ReinvestmentMethod `json:"reinvestment_method" yaml:"reinvestment_method"`
	SalesToCapital     float64            `json:"sales_to_capital" yaml:"sales_to_capital"`
	CapexPctSales      float64            `json:"capex_pct_sales" yaml:"capex_pct_sales"`
	DepPctSales        float64            `json:"dep_pct_sales" yaml:"dep_pct_sales"`
	NWCPctSales        float64            `json:"nwc_pct_sales" yaml:"nwc_pct_sales"`

	// Cost of capital
	CostOfEquityMode CostOfEquityMode `json:"cost_of_equity_mode" yaml:"cost_of_equity_mode"`
	RiskFree         float64          `json:"risk_free" yaml:"risk_free"`
	Beta             float64          `json:"beta" yaml:"beta"`
	EquityRiskPrem   float64          `json:"equity_risk_premium" yaml:"equity_risk_premium"`
	CostOfEquity     float64          `json:"cost_of_equity" yaml:"cost_of_equity"` // manual Ke
	CostOfDebt       float64          `json:"cost_of_debt" yaml:"cost_of_debt"`     // pre-tax Kd
	WeightEquity     float64          `json:"weight_equity" yaml:"weight_equity"`
	WeightDebt       float64          `json:"weight_debt" yaml:"weight_debt"`

	// WACCShift is an additive adjustment to the computed WACC. The base
	// scenario leaves it at 0; sensitivity axes and Monte Carlo priors move
	// it so that "vary the discount rate" is an ordinary field override.
	WACCShift float64 `json:"wacc_shift" yaml:"wacc_shift"`

	// Terminal value
	TerminalMethod TerminalMethod `json:"terminal_method" yaml:"terminal_method"`
	TerminalGrowth float64        `json:"terminal_growth" yaml:"terminal_growth"`
	ExitMultiple   float64        `json:"exit_multiple" yaml:"exit_multiple"`
	ExitMetric     ExitMetric     `json:"exit_metric" yaml:"exit_metric"`
}

// Default returns a complete baseline scenario. Values mirror a large-cap
// industrial: $5B revenue, 10-year horizon with 5 explicit growth years,
// margins expanding 12% -> 18%, capital structure yielding a WACC near 8%.
func Default() Assumptions {
	return Assumptions{
		Currency:          "USD",
		SharesOutstanding: 500_000_000,
		CurrentPrice:      42.00,
		NetDebt:           1_200_000_000,
		MinorityInterest:  0,
		CashAdjustment:    0,

		BaseRevenue: 5_000_000_000,
		Years:       10,
		GrowthYears: 5,

		RevenueGrowth: 0.08,
		TaxRate:       0.23,
		EBITMargin0:   0.12,
		EBITMarginT:   0.18,

		ReinvestmentMethod: ReinvestSalesToCapital,
		SalesToCapital:     2.5,
		CapexPctSales:      0.05,
		DepPctSales:        0.035,
		NWCPctSales:        0.02,

		CostOfEquityMode: CostOfEquityCAPM,
		RiskFree:         0.04,
		Beta:             1.1,
		EquityRiskPrem:   0.05,
		CostOfEquity:     0.095,
		CostOfDebt:       0.05,
		WeightEquity:     0.80,
		WeightDebt:       0.20,

		TerminalMethod: TerminalGordon,
		TerminalGrowth: 0.025,
		ExitMultiple:   12.0,
		ExitMetric:     ExitMetricEBITDA,
	}
}

// =============================================================================
// FIELD OVERRIDES (clone-and-override primitive)
// =============================================================================

// Override returns a copy of a with one named numeric field replaced.
// Field names are the JSON tags. The receiver is never modified; this is the
// primitive the sensitivity and Monte Carlo engines build on.
func (a Assumptions) Override(field string, value float64) (Assumptions, error) {
	out := a
	switch field {
	case "shares_outstanding":
		out.SharesOutstanding = value
	case "current_price":
		out.CurrentPrice = value
	case "net_debt":
		out.NetDebt = value
	case "minority_interest":
		out.MinorityInterest = value
	case "cash_adjustment":
		out.CashAdjustment = value
	case "base_revenue":
		out.BaseRevenue = value
	case "revenue_growth":
		out.RevenueGrowth = value
	case "tax_rate":
		out.TaxRate = value
	case "ebit_margin_0":
		out.EBITMargin0 = value
	case "ebit_margin_t":
		out.EBITMarginT = value
	case "sales_to_capital":
		out.SalesToCapital = value
	case "capex_pct_sales":
		out.CapexPctSales = value
	case "dep_pct_sales":
		out.DepPctSales = value
	case "nwc_pct_sales":
		out.NWCPctSales = value
	case "risk_free":
		out.RiskFree = value
	case "beta":
		out.Beta = value
	case "equity_risk_premium":
		out.EquityRiskPrem = value
	case "cost_of_equity":
		out.CostOfEquity = value
	case "cost_of_debt":
		out.CostOfDebt = value
	case "weight_equity":
		out.WeightEquity = value
	case "weight_debt":
		out.WeightDebt = value
	case "wacc_shift":
		out.WACCShift = value
	case "terminal_growth":
		out.TerminalGrowth = value
	case "exit_multiple":
		out.ExitMultiple = value
	default:
		return a, fmt.Errorf("unknown assumption field %q", field)
	}
	return out, nil
}

// Value reads a named numeric field. Same field names as Override.
func (a Assumptions) Value(field string) (float64, error) {
	switch field {
	case "shares_outstanding":
		return a.SharesOutstanding, nil
	case "current_price":
		return a.CurrentPrice, nil
	case "net_debt":
		return a.NetDebt, nil
	case "minority_interest":
		return a.MinorityInterest, nil
	case "cash_adjustment":
		return a.CashAdjustment, nil
	case "base_revenue":
		return a.BaseRevenue, nil
	case "revenue_growth":
		return a.RevenueGrowth, nil
	case "tax_rate":
		return a.TaxRate, nil
	case "ebit_margin_0":
		return a.EBITMargin0, nil
	case "ebit_margin_t":
		return a.EBITMarginT, nil
	case "sales_to_capital":
		return a.SalesToCapital, nil
	case "capex_pct_sales":
		return a.CapexPctSales, nil
	case "dep_pct_sales":
		return a.DepPctSales, nil
	case "nwc_pct_sales":
		return a.NWCPctSales, nil
	case "risk_free":
		return a.RiskFree, nil
	case "beta":
		return a.Beta, nil
	case "equity_risk_premium":
		return a.EquityRiskPrem, nil
	case "cost_of_equity":
		return a.CostOfEquity, nil
	case "cost_of_debt":
		return a.CostOfDebt, nil
	case "weight_equity":
		return a.WeightEquity, nil
	case "weight_debt":
		return a.WeightDebt, nil
	case "wacc_shift":
		return a.WACCShift, nil
	case "terminal_growth":
		return a.TerminalGrowth, nil
	case "exit_multiple":
		return a.ExitMultiple, nil
	}
	return 0, fmt.Errorf("unknown assumption field %q", field)
}
