package sensitivity

import (
	"math"
	"sort"

	"financeanalyst/pkg/core/assumption"
	"financeanalyst/pkg/core/pipeline"
)

// Perturbation is one tornado variable and the fixed absolute step applied
// in each direction.
type Perturbation struct {
	Variable string  `json:"variable"`
	Step     float64 `json:"step"`
}

// TornadoItem is one ranked bar: the signed per-share delta from moving the
// variable down and up by its step. Impact is the larger absolute delta;
// Direction reports whether the output moves with ("positive") or against
// ("negative") the input.
type TornadoItem struct {
	Variable  string  `json:"variable"`
	Step      float64 `json:"step"`
	DeltaDown float64 `json:"delta_down"`
	DeltaUp   float64 `json:"delta_up"`
	Impact    float64 `json:"impact"`
	Direction string  `json:"direction"`
}

// DefaultPerturbations covers the workbench's standard tornado variables.
// Steps are in the variable's own units (rates are fractions).
func DefaultPerturbations() []Perturbation {
	return []Perturbation{
		{Variable: "wacc", Step: 0.01},
		{Variable: "terminal_growth", Step: 0.005},
		{Variable: "revenue_growth", Step: 0.01},
		{Variable: "ebit_margin_t", Step: 0.02},
		{Variable: "sales_to_capital", Step: 0.25},
		{Variable: "tax_rate", Step: 0.02},
	}
}

// GenerateTornado reruns the pipeline twice per variable (step down, step up)
// and ranks the variables by absolute per-share impact, descending. Ties
// break on variable name so the ordering is fully deterministic.
func GenerateTornado(a assumption.Assumptions, baseValue float64, perts []Perturbation) ([]TornadoItem, error) {
	items := make([]TornadoItem, 0, len(perts))
	for _, p := range perts {
		// "wacc" is derived, not stored; a step on it is a step on the
		// additive shift. Everything else perturbs the stored field.
		field := p.Variable
		if field == "wacc" {
			field = "wacc_shift"
		}
		cur, err := a.Value(field)
		if err != nil {
			return nil, err
		}

		down, err := a.Override(field, cur-p.Step)
		if err != nil {
			return nil, err
		}
		up, err := a.Override(field, cur+p.Step)
		if err != nil {
			return nil, err
		}

		deltaDown := pipeline.Run(down).PerShare - baseValue
		deltaUp := pipeline.Run(up).PerShare - baseValue

		impact := math.Abs(deltaUp)
		if math.Abs(deltaDown) > impact {
			impact = math.Abs(deltaDown)
		}
		direction := "positive"
		if deltaUp < 0 {
			direction = "negative"
		}

		items = append(items, TornadoItem{
			Variable:  p.Variable,
			Step:      p.Step,
			DeltaDown: deltaDown,
			DeltaUp:   deltaUp,
			Impact:    impact,
			Direction: direction,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Impact != items[j].Impact {
			return items[i].Impact > items[j].Impact
		}
		return items[i].Variable < items[j].Variable
	})
	return items, nil
}
