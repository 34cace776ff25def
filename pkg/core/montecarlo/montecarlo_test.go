package montecarlo

import (
	"math"
	"testing"

	"financeanalyst/pkg/core/assumption"
)

func TestGeneratePriorsCenteredOnScenario(t *testing.T) {
	a := assumption.Default()
	priors := GeneratePriors(a)

	if len(priors) != 5 {
		t.Fatalf("got %d priors, want 5", len(priors))
	}
	byVar := map[string]Prior{}
	for _, p := range priors {
		if err := p.Validate(); err != nil {
			t.Errorf("default prior invalid: %v", err)
		}
		byVar[p.Variable] = p
	}

	if p := byVar["revenue_growth"]; p.Mode != a.RevenueGrowth {
		t.Errorf("revenue_growth mode = %v, want %v", p.Mode, a.RevenueGrowth)
	}
	if p := byVar["terminal_growth"]; p.Mode != a.TerminalGrowth {
		t.Errorf("terminal_growth mode = %v, want %v", p.Mode, a.TerminalGrowth)
	}
	if _, ok := byVar["wacc_shift"]; !ok {
		t.Error("expected a wacc_shift prior")
	}
}

func TestPriorValidate(t *testing.T) {
	if err := (Prior{Variable: "x", Min: 1, Mode: 0, Max: 2}).Validate(); err == nil {
		t.Error("mode below min should be invalid")
	}
	if err := (Prior{Variable: "x", Min: 1, Mode: 1, Max: 1}).Validate(); err == nil {
		t.Error("zero-width triangle should be invalid")
	}
	if err := (Prior{Variable: "x", Min: 0, Mode: 1, Max: 2}).Validate(); err != nil {
		t.Errorf("valid triangle rejected: %v", err)
	}
}

func TestRunPercentileOrdering(t *testing.T) {
	a := assumption.Default()
	res, err := Run(a, GeneratePriors(a), 2000, 42)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Requested != 2000 {
		t.Errorf("Requested = %d, want 2000", res.Requested)
	}
	if res.Valid == 0 {
		t.Fatal("no valid runs from a healthy scenario")
	}
	if !(res.P5 <= res.P50 && res.P50 <= res.P95) {
		t.Errorf("percentiles out of order: p5=%v p50=%v p95=%v", res.P5, res.P50, res.P95)
	}
	if len(res.Values) != res.Valid {
		t.Errorf("len(Values) = %d, want Valid = %d", len(res.Values), res.Valid)
	}
}

func TestRunSeedDeterminism(t *testing.T) {
	a := assumption.Default()
	priors := GeneratePriors(a)

	first, err := Run(a, priors, 500, 7)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	second, err := Run(a, priors, 500, 7)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if first.P5 != second.P5 || first.P50 != second.P50 || first.P95 != second.P95 {
		t.Errorf("same seed produced different percentiles:\n%+v\n%+v", first, second)
	}
	if len(first.Values) != len(second.Values) {
		t.Fatalf("sample sizes differ: %d vs %d", len(first.Values), len(second.Values))
	}
	for i := range first.Values {
		if first.Values[i] != second.Values[i] {
			t.Fatalf("draw %d differs: %v vs %v", i, first.Values[i], second.Values[i])
		}
	}

	third, err := Run(a, priors, 500, 8)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if first.P50 == third.P50 {
		t.Error("different seeds should not produce identical medians")
	}
}

func TestRunExcludesNonFiniteOutcomes(t *testing.T) {
	// Force degeneracy: terminal growth sampled around and above the WACC
	// under the Gordon method makes some draws non-finite or absurdly
	// signed; NaN per-share comes from zero-share draws.
	a := assumption.Default()
	priors := []Prior{
		// Shares crossing zero: draws below zero yield NaN per-share.
		{Variable: "shares_outstanding", Min: -100, Mode: 1, Max: 100},
	}

	res, err := Run(a, priors, 1000, 3)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Valid >= res.Requested {
		t.Errorf("expected some excluded runs, valid=%d requested=%d", res.Valid, res.Requested)
	}
	for i, v := range res.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite value %v leaked into sample at %d", v, i)
		}
	}
	if math.IsNaN(res.P50) {
		t.Error("median should be finite when valid runs exist")
	}
}

func TestRunInputValidation(t *testing.T) {
	a := assumption.Default()
	if _, err := Run(a, GeneratePriors(a), 0, 1); err == nil {
		t.Error("zero iterations should error")
	}
	bad := []Prior{{Variable: "revenue_growth", Min: 2, Mode: 1, Max: 0}}
	if _, err := Run(a, bad, 10, 1); err == nil {
		t.Error("malformed prior should error")
	}
	unknown := []Prior{{Variable: "nope", Min: 0, Mode: 1, Max: 2}}
	if _, err := Run(a, unknown, 10, 1); err == nil {
		t.Error("unknown prior variable should error")
	}
}
