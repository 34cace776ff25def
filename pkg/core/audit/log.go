// Package audit records assumption replacement as an explicit event trail.
// It observes the interaction layer from the outside: callers hand it the
// previous and next assumption records and it derives field-level change
// events. The math core never imports this package.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"financeanalyst/pkg/core/assumption"
)

// Event is one recorded field change.
type Event struct {
	ID       string    `json:"id"`
	At       time.Time `json:"at"`
	Scenario string    `json:"scenario"`
	Field    string    `json:"field"`
	Old      float64   `json:"old"`
	New      float64   `json:"new"`
}

// Sink receives events. Implementations must be safe for concurrent use.
type Sink interface {
	Append(ctx context.Context, ev Event) error
}

// trackedFields is the diffable numeric surface of the assumption record,
// in stable order so event sequences are deterministic.
var trackedFields = []string{
	"shares_outstanding", "current_price", "net_debt", "minority_interest",
	"cash_adjustment", "base_revenue", "revenue_growth", "tax_rate",
	"ebit_margin_0", "ebit_margin_t", "sales_to_capital", "capex_pct_sales",
	"dep_pct_sales", "nwc_pct_sales", "risk_free", "beta",
	"equity_risk_premium", "cost_of_equity", "cost_of_debt",
	"weight_equity", "weight_debt", "wacc_shift", "terminal_growth",
	"exit_multiple",
}

// Log diffs assumption replacements into a sink.
type Log struct {
	sink Sink
	now  func() time.Time
}

// NewLog builds a log writing to sink. A nil sink falls back to an unbounded
// in-memory sink.
func NewLog(sink Sink) *Log {
	if sink == nil {
		sink = NewMemorySink(0)
	}
	return &Log{sink: sink, now: time.Now}
}

// Record emits one event per numeric field that differs between prev and
// next, in field order. Returns the first sink error encountered.
func (l *Log) Record(ctx context.Context, scenario string, prev, next assumption.Assumptions) error {
	at := l.now()
	for _, f := range trackedFields {
		oldVal, err := prev.Value(f)
		if err != nil {
			return err
		}
		newVal, err := next.Value(f)
		if err != nil {
			return err
		}
		if oldVal == newVal {
			continue
		}
		ev := Event{
			ID:       uuid.NewString(),
			At:       at,
			Scenario: scenario,
			Field:    f,
			Old:      oldVal,
			New:      newVal,
		}
		if err := l.sink.Append(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

// MemorySink keeps events in memory. With limit > 0 it behaves as a ring,
// discarding the oldest events once full.
type MemorySink struct {
	mu     sync.Mutex
	limit  int
	events []Event
}

// NewMemorySink builds a memory sink; limit <= 0 means unbounded.
func NewMemorySink(limit int) *MemorySink {
	return &MemorySink{limit: limit}
}

// Append implements Sink.
func (s *MemorySink) Append(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	if s.limit > 0 && len(s.events) > s.limit {
		s.events = s.events[len(s.events)-s.limit:]
	}
	return nil
}

// Events returns a copy of the recorded events, oldest first.
func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}
