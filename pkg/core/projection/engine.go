package projection

import "financeanalyst/pkg/core/assumption"

// Project builds the FCFF schedule for the full horizon. The first projected
// year is escalated: Revenue[0] = BaseRevenue * (1 + growth[0]). The EBIT
// margin interpolates linearly from EBITMargin0 in year 0 to EBITMarginT in
// the final explicit-growth year, then holds flat.
//
// Numeric degeneracy (NaN/Inf from pathological inputs) flows through the
// rows untouched; the validate package is responsible for flagging it.
// A growth vector shorter than the horizon truncates the schedule to its
// length rather than panicking.
func Project(a assumption.Assumptions, growth []float64) []Row {
	years := a.Years
	if years > len(growth) {
		years = len(growth)
	}
	if years <= 0 {
		return []Row{}
	}

	rows := make([]Row, years)
	prevRevenue := a.BaseRevenue
	for i := 0; i < years; i++ {
		revenue := prevRevenue * (1 + growth[i])

		margin := marginForYear(a, i)
		ebit := revenue * margin
		nopat := ebit * (1 - a.TaxRate)

		dep := revenue * a.DepPctSales
		reinvestment := reinvestmentForYear(a, revenue, prevRevenue)

		rows[i] = Row{
			Year:         i,
			GrowthRate:   growth[i],
			Revenue:      revenue,
			EBITMargin:   margin,
			EBIT:         ebit,
			Depreciation: dep,
			EBITDA:       ebit + dep,
			NOPAT:        nopat,
			Reinvestment: reinvestment,
			FCFF:         nopat - reinvestment,
		}
		prevRevenue = revenue
	}
	return rows
}

// marginForYear interpolates the EBIT margin across the explicit growth
// period and holds it flat afterwards.
func marginForYear(a assumption.Assumptions, year int) float64 {
	if a.GrowthYears <= 1 || year >= a.GrowthYears-1 {
		return a.EBITMarginT
	}
	t := float64(year) / float64(a.GrowthYears-1)
	return a.EBITMargin0 + (a.EBITMarginT-a.EBITMargin0)*t
}

// reinvestmentForYear derives reinvestment from the configured method.
func reinvestmentForYear(a assumption.Assumptions, revenue, prevRevenue float64) float64 {
	switch a.ReinvestmentMethod {
	case assumption.ReinvestSalesToCapital:
		// Growth capital: incremental revenue scaled by capital efficiency.
		// SalesToCapital = 0 yields +/-Inf, surfaced by validation.
		return (revenue - prevRevenue) / a.SalesToCapital
	default:
		// Percent-of-sales composition: capex + working capital build,
		// net of depreciation.
		return revenue * (a.CapexPctSales + a.NWCPctSales - a.DepPctSales)
	}
}
