// Package sensitivity recomputes the valuation pipeline across assumption
// perturbations: 2-D heatmap grids for pairs of variables, and one-at-a-time
// tornado deltas. Everything here is deterministic; identical assumptions and
// axis configuration always produce identical output. Memoization, if wanted,
// belongs to the caller.
package sensitivity

import (
	"fmt"

	"financeanalyst/pkg/core/assumption"
	"financeanalyst/pkg/core/pipeline"
)

// Axis defines the sampled range of one variable: Steps points linearly
// spaced from Min to Max inclusive.
type Axis struct {
	Variable string  `json:"variable"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Steps    int     `json:"steps"`
}

// Pair names one heatmap: X varies across columns, Y across rows.
type Pair struct {
	Name string `json:"name"`
	X    Axis   `json:"x"`
	Y    Axis   `json:"y"`
}

// Config is the full heatmap request.
type Config struct {
	Pairs []Pair `json:"pairs"`
}

// Grid is one computed heatmap. Values[row][col] is the per-share value at
// (YValues[row], XValues[col]).
type Grid struct {
	Name      string      `json:"name"`
	XVariable string      `json:"x_variable"`
	YVariable string      `json:"y_variable"`
	XValues   []float64   `json:"x_values"`
	YValues   []float64   `json:"y_values"`
	Values    [][]float64 `json:"values"`
}

// DefaultConfig builds the three standard workbench heatmaps, centered on
// the scenario's current values.
func DefaultConfig(a assumption.Assumptions) Config {
	return Config{Pairs: []Pair{
		{
			Name: "wacc_x_terminal_growth",
			X:    Axis{Variable: "wacc", Min: 0.06, Max: 0.11, Steps: 6},
			Y:    Axis{Variable: "terminal_growth", Min: 0.01, Max: 0.035, Steps: 6},
		},
		{
			Name: "wacc_x_exit_multiple",
			X:    Axis{Variable: "wacc", Min: 0.06, Max: 0.11, Steps: 6},
			Y:    Axis{Variable: "exit_multiple", Min: 8, Max: 16, Steps: 5},
		},
		{
			Name: "growth_x_terminal_margin",
			X:    Axis{Variable: "revenue_growth", Min: a.RevenueGrowth - 0.04, Max: a.RevenueGrowth + 0.04, Steps: 5},
			Y:    Axis{Variable: "ebit_margin_t", Min: a.EBITMarginT - 0.04, Max: a.EBITMarginT + 0.04, Steps: 5},
		},
	}}
}

// GenerateHeatmaps reruns the full pipeline for every grid cell of every
// configured pair. Cost is O(steps^2 * pipeline) per grid; callers keep
// steps small (<= ~10) and recompute only when assumptions change.
func GenerateHeatmaps(a assumption.Assumptions, cfg Config) ([]Grid, error) {
	grids := make([]Grid, 0, len(cfg.Pairs))
	for _, p := range cfg.Pairs {
		g, err := generateGrid(a, p)
		if err != nil {
			return nil, fmt.Errorf("heatmap %q: %w", p.Name, err)
		}
		grids = append(grids, g)
	}
	return grids, nil
}

func generateGrid(a assumption.Assumptions, p Pair) (Grid, error) {
	// An exit-multiple axis is meaningless under a Gordon terminal value, so
	// the grid switches the cloned scenario to the matching method.
	if p.X.Variable == "exit_multiple" || p.Y.Variable == "exit_multiple" {
		a.TerminalMethod = assumption.TerminalExitMultiple
	}

	xs := linspace(p.X.Min, p.X.Max, p.X.Steps)
	ys := linspace(p.Y.Min, p.Y.Max, p.Y.Steps)

	values := make([][]float64, len(ys))
	for yi, yv := range ys {
		row := make([]float64, len(xs))
		withY, err := pipeline.Override(a, p.Y.Variable, yv)
		if err != nil {
			return Grid{}, err
		}
		for xi, xv := range xs {
			cell, err := pipeline.Override(withY, p.X.Variable, xv)
			if err != nil {
				return Grid{}, err
			}
			row[xi] = pipeline.Run(cell).PerShare
		}
		values[yi] = row
	}

	return Grid{
		Name:      p.Name,
		XVariable: p.X.Variable,
		YVariable: p.Y.Variable,
		XValues:   xs,
		YValues:   ys,
		Values:    values,
	}, nil
}

// linspace samples steps points from min to max inclusive.
func linspace(min, max float64, steps int) []float64 {
	if steps <= 0 {
		return []float64{}
	}
	if steps == 1 {
		return []float64{min}
	}
	out := make([]float64, steps)
	span := max - min
	for i := 0; i < steps; i++ {
		out[i] = min + span*float64(i)/float64(steps-1)
	}
	return out
}
