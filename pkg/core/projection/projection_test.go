package projection

import (
	"math"
	"testing"

	"financeanalyst/pkg/core/assumption"
)

const tol = 1e-9

// =============================================================================
// GROWTH VECTOR
// =============================================================================

func TestGrowthVectorShape(t *testing.T) {
	vec := GrowthVector(0.05, 0.025, 10, 5)

	if len(vec) != 10 {
		t.Fatalf("len = %d, want 10", len(vec))
	}
	for i := 0; i < 5; i++ {
		if vec[i] != 0.05 {
			t.Errorf("explicit year %d = %v, want 0.05", i, vec[i])
		}
	}
	if math.Abs(vec[9]-0.025) > tol {
		t.Errorf("final year = %v, want terminal 0.025", vec[9])
	}
	// Monotonic fade from base toward terminal.
	for i := 5; i < 10; i++ {
		if vec[i] > vec[i-1]+tol {
			t.Errorf("fade not monotonic at year %d: %v > %v", i, vec[i], vec[i-1])
		}
	}
}

func TestGrowthVectorLinearFade(t *testing.T) {
	vec := GrowthVector(0.10, 0.02, 6, 2)
	// Fade over 4 years: steps of (0.02-0.10)/4 = -0.02.
	want := []float64{0.10, 0.10, 0.08, 0.06, 0.04, 0.02}
	for i := range want {
		if math.Abs(vec[i]-want[i]) > tol {
			t.Errorf("year %d = %v, want %v", i, vec[i], want[i])
		}
	}
}

func TestGrowthVectorEdgeCases(t *testing.T) {
	if got := GrowthVector(0.05, 0.02, 0, 0); len(got) != 0 {
		t.Errorf("zero horizon: len = %d, want 0", len(got))
	}

	vec := GrowthVector(0.05, 0.02, 4, 0)
	for i, g := range vec {
		if g != 0.02 {
			t.Errorf("explicitYears=0 year %d = %v, want terminal 0.02", i, g)
		}
	}

	// Explicit period covering the whole horizon: all base rate.
	vec = GrowthVector(0.07, 0.02, 3, 3)
	for i, g := range vec {
		if g != 0.07 {
			t.Errorf("full explicit year %d = %v, want 0.07", i, g)
		}
	}

	// Explicit period longer than horizon clamps without panicking.
	vec = GrowthVector(0.07, 0.02, 3, 8)
	if len(vec) != 3 {
		t.Errorf("clamped len = %d, want 3", len(vec))
	}
}

// =============================================================================
// PROJECTION ENGINE
// =============================================================================

func testAssumptions() assumption.Assumptions {
	a := assumption.Default()
	a.BaseRevenue = 1000
	a.Years = 5
	a.GrowthYears = 3
	a.RevenueGrowth = 0.10
	a.TaxRate = 0.25
	a.EBITMargin0 = 0.10
	a.EBITMarginT = 0.20
	a.ReinvestmentMethod = assumption.ReinvestSalesToCapital
	a.SalesToCapital = 2.0
	return a
}

func TestProjectYearZeroEscalated(t *testing.T) {
	// Locks the revenue indexing convention: the first projected year is
	// escalated by growth[0], the base year itself is never emitted.
	a := testAssumptions()
	rows := Project(a, GrowthVector(0.10, 0.025, a.Years, a.GrowthYears))

	if len(rows) != 5 {
		t.Fatalf("len = %d, want 5", len(rows))
	}
	if math.Abs(rows[0].Revenue-1100) > tol {
		t.Errorf("rows[0].Revenue = %v, want 1100 (rev0 * 1.10)", rows[0].Revenue)
	}
	if math.Abs(rows[1].Revenue-1210) > tol {
		t.Errorf("rows[1].Revenue = %v, want 1210", rows[1].Revenue)
	}
}

func TestProjectMonotonicRevenue(t *testing.T) {
	a := testAssumptions()
	rows := Project(a, GrowthVector(0.10, 0.02, a.Years, a.GrowthYears))

	for i := 1; i < len(rows); i++ {
		if rows[i].GrowthRate > 0 && rows[i].Revenue <= rows[i-1].Revenue {
			t.Errorf("revenue not increasing at year %d: %v <= %v",
				i, rows[i].Revenue, rows[i-1].Revenue)
		}
	}
}

func TestProjectMarginInterpolation(t *testing.T) {
	a := testAssumptions() // margins 0.10 -> 0.20 over 3 growth years
	rows := Project(a, GrowthVector(0.10, 0.02, a.Years, a.GrowthYears))

	wantMargins := []float64{0.10, 0.15, 0.20, 0.20, 0.20}
	for i, want := range wantMargins {
		if math.Abs(rows[i].EBITMargin-want) > tol {
			t.Errorf("year %d margin = %v, want %v", i, rows[i].EBITMargin, want)
		}
	}
}

func TestProjectRowArithmetic(t *testing.T) {
	a := testAssumptions()
	rows := Project(a, GrowthVector(0.10, 0.02, a.Years, a.GrowthYears))

	// Year 0 by hand: revenue 1100, margin 0.10, tax 0.25, S2C 2.0.
	r := rows[0]
	if math.Abs(r.EBIT-110) > tol {
		t.Errorf("EBIT = %v, want 110", r.EBIT)
	}
	if math.Abs(r.NOPAT-82.5) > tol {
		t.Errorf("NOPAT = %v, want 82.5", r.NOPAT)
	}
	if math.Abs(r.Reinvestment-50) > tol { // (1100-1000)/2.0
		t.Errorf("Reinvestment = %v, want 50", r.Reinvestment)
	}
	if math.Abs(r.FCFF-32.5) > tol {
		t.Errorf("FCFF = %v, want 32.5", r.FCFF)
	}
	if math.Abs(r.EBITDA-(r.EBIT+r.Depreciation)) > tol {
		t.Errorf("EBITDA = %v, want EBIT+Dep = %v", r.EBITDA, r.EBIT+r.Depreciation)
	}
}

func TestProjectPercentOfSales(t *testing.T) {
	a := testAssumptions()
	a.ReinvestmentMethod = assumption.ReinvestPercentOfSales
	a.CapexPctSales = 0.06
	a.DepPctSales = 0.04
	a.NWCPctSales = 0.02
	rows := Project(a, GrowthVector(0.10, 0.02, a.Years, a.GrowthYears))

	// revenue * (0.06 + 0.02 - 0.04) = revenue * 0.04
	want := rows[0].Revenue * 0.04
	if math.Abs(rows[0].Reinvestment-want) > tol {
		t.Errorf("Reinvestment = %v, want %v", rows[0].Reinvestment, want)
	}
}

func TestProjectDegenerateInputsDoNotPanic(t *testing.T) {
	a := testAssumptions()
	a.SalesToCapital = 0 // division by zero -> Inf reinvestment
	rows := Project(a, GrowthVector(0.10, 0.02, a.Years, a.GrowthYears))

	if !math.IsInf(rows[0].Reinvestment, 1) {
		t.Errorf("Reinvestment = %v, want +Inf to propagate", rows[0].Reinvestment)
	}
	if !math.IsInf(-rows[0].FCFF, 1) {
		t.Errorf("FCFF = %v, want -Inf to propagate", rows[0].FCFF)
	}

	// Negative base revenue flows through as-is, no panic.
	a = testAssumptions()
	a.BaseRevenue = -500
	rows = Project(a, GrowthVector(0.10, 0.02, a.Years, a.GrowthYears))
	if rows[0].Revenue >= 0 {
		t.Errorf("Revenue = %v, want negative propagated", rows[0].Revenue)
	}
}

func TestProjectShortGrowthVector(t *testing.T) {
	a := testAssumptions()
	rows := Project(a, []float64{0.10, 0.10})
	if len(rows) != 2 {
		t.Errorf("len = %d, want truncation to 2", len(rows))
	}
	if len(Project(a, nil)) != 0 {
		t.Error("nil growth vector should yield empty schedule")
	}
}
