package valuation

import (
	"encoding/json"
	"math"

	"financeanalyst/pkg/core/assumption"
	"financeanalyst/pkg/core/projection"
)

// Result holds the valuation outputs. Rebuilt from scratch on every
// recompute; nothing here is mutated in place.
type Result struct {
	WACC           float64 `json:"wacc"`
	TerminalValue  float64 `json:"terminal_value"` // undiscounted, end of horizon
	PVFCFF         float64 `json:"pv_fcff"`
	PVTerminal     float64 `json:"pv_terminal"`
	EnterpriseVal  float64 `json:"enterprise_value"`
	EquityValue    float64 `json:"equity_value"`
	PerShare       float64 `json:"per_share"`
	MarginOfSafety float64 `json:"margin_of_safety"` // (perShare - price) / price
}

// MarshalJSON encodes non-finite fields as null. Degenerate numbers must
// survive the JSON boundary (encoding/json rejects NaN/Inf outright); the
// validation result travelling alongside carries the diagnosis.
func (r Result) MarshalJSON() ([]byte, error) {
	type wire struct {
		WACC           *float64 `json:"wacc"`
		TerminalValue  *float64 `json:"terminal_value"`
		PVFCFF         *float64 `json:"pv_fcff"`
		PVTerminal     *float64 `json:"pv_terminal"`
		EnterpriseVal  *float64 `json:"enterprise_value"`
		EquityValue    *float64 `json:"equity_value"`
		PerShare       *float64 `json:"per_share"`
		MarginOfSafety *float64 `json:"margin_of_safety"`
	}
	return json.Marshal(wire{
		WACC:           finiteOrNil(r.WACC),
		TerminalValue:  finiteOrNil(r.TerminalValue),
		PVFCFF:         finiteOrNil(r.PVFCFF),
		PVTerminal:     finiteOrNil(r.PVTerminal),
		EnterpriseVal:  finiteOrNil(r.EnterpriseVal),
		EquityValue:    finiteOrNil(r.EquityValue),
		PerShare:       finiteOrNil(r.PerShare),
		MarginOfSafety: finiteOrNil(r.MarginOfSafety),
	})
}

func finiteOrNil(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// ValueEquity discounts the FCFF schedule and the terminal value to present
// value and bridges enterprise value down to a per-share number.
//
// Row i is discounted at 1/(1+wacc)^(i+1); the terminal value at
// 1/(1+wacc)^years. Non-positive share counts produce NaN per-share fields
// instead of a panic, deferring the user-facing error to validation.
func ValueEquity(a assumption.Assumptions, rows []projection.Row) Result {
	wacc := WACC(a)

	var pvFCFF float64
	discount := 1.0
	for _, r := range rows {
		discount /= 1 + wacc
		pvFCFF += r.FCFF * discount
	}

	var tv, pvTerminal float64
	if len(rows) > 0 {
		tv = TerminalValue(rows[len(rows)-1], wacc, a)
		pvTerminal = tv * discount
	}

	ev := pvFCFF + pvTerminal
	equity := ev - a.NetDebt - a.MinorityInterest + a.CashAdjustment

	perShare := math.NaN()
	if a.SharesOutstanding > 0 {
		perShare = equity / a.SharesOutstanding
	}

	mos := math.NaN()
	if a.CurrentPrice != 0 {
		mos = (perShare - a.CurrentPrice) / a.CurrentPrice
	}

	return Result{
		WACC:           wacc,
		TerminalValue:  tv,
		PVFCFF:         pvFCFF,
		PVTerminal:     pvTerminal,
		EnterpriseVal:  ev,
		EquityValue:    equity,
		PerShare:       perShare,
		MarginOfSafety: mos,
	}
}
