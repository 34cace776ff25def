package montecarlo

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"financeanalyst/pkg/core/assumption"
	"financeanalyst/pkg/core/pipeline"
)

// Result aggregates one simulation. Values holds the per-share outcome of
// every FINITE run in draw order, for histogram rendering. Non-finite runs
// (degenerate draws, e.g. terminal growth sampled above WACC under Gordon)
// are excluded from Values and from the percentiles; Requested-Valid counts
// them. This exclusion is the locked-in convention, verified by test.
type Result struct {
	Requested int       `json:"requested"`
	Valid     int       `json:"valid"`
	P5        float64   `json:"p5"`
	P50       float64   `json:"p50"`
	P95       float64   `json:"p95"`
	Values    []float64 `json:"values"`
}

// MarshalJSON encodes NaN percentiles (the zero-valid-run case) as null,
// since encoding/json rejects NaN outright.
func (r Result) MarshalJSON() ([]byte, error) {
	type wire struct {
		Requested int       `json:"requested"`
		Valid     int       `json:"valid"`
		P5        *float64  `json:"p5"`
		P50       *float64  `json:"p50"`
		P95       *float64  `json:"p95"`
		Values    []float64 `json:"values"`
	}
	finiteOrNil := func(f float64) *float64 {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return &f
	}
	return json.Marshal(wire{
		Requested: r.Requested,
		Valid:     r.Valid,
		P5:        finiteOrNil(r.P5),
		P50:       finiteOrNil(r.P50),
		P95:       finiteOrNil(r.P95),
		Values:    r.Values,
	})
}

// Run performs iterations independent valuation runs. Each run draws one
// sample per prior, overrides the cloned assumptions with the draws, and
// records the pipeline's per-share value. The same seed always reproduces
// the same result.
func Run(a assumption.Assumptions, priors []Prior, iterations int, seed uint64) (Result, error) {
	if iterations <= 0 {
		return Result{}, fmt.Errorf("iterations must be positive, got %d", iterations)
	}
	for _, p := range priors {
		if err := p.Validate(); err != nil {
			return Result{}, err
		}
	}

	src := rand.NewSource(seed)
	dists := make([]distuv.Triangle, len(priors))
	for i, p := range priors {
		dists[i] = distuv.NewTriangle(p.Min, p.Max, p.Mode, src)
	}

	vals := make([]float64, 0, iterations)
	for it := 0; it < iterations; it++ {
		draw := a
		var err error
		for i, p := range priors {
			draw, err = pipeline.Override(draw, p.Variable, dists[i].Rand())
			if err != nil {
				return Result{}, fmt.Errorf("iteration %d: %w", it, err)
			}
		}

		perShare := pipeline.Run(draw).PerShare
		if math.IsNaN(perShare) || math.IsInf(perShare, 0) {
			continue
		}
		vals = append(vals, perShare)
	}

	res := Result{
		Requested: iterations,
		Valid:     len(vals),
		Values:    vals,
		P5:        math.NaN(),
		P50:       math.NaN(),
		P95:       math.NaN(),
	}
	if len(vals) == 0 {
		return res, nil
	}

	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	res.P5 = stat.Quantile(0.05, stat.Empirical, sorted, nil)
	res.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	res.P95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	return res, nil
}
