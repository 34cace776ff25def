package audit

import (
	"context"
	"testing"

	"financeanalyst/pkg/core/assumption"
)

func TestRecordDiffsChangedFields(t *testing.T) {
	sink := NewMemorySink(0)
	log := NewLog(sink)

	prev := assumption.Default()
	next := prev
	next.TerminalGrowth = 0.03
	next.Beta = 1.3

	if err := log.Record(context.Background(), "base", prev, next); err != nil {
		t.Fatalf("Record: %v", err)
	}

	events := sink.Events()
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2: %+v", len(events), events)
	}
	// Stable field order: beta before terminal_growth.
	if events[0].Field != "beta" || events[1].Field != "terminal_growth" {
		t.Errorf("unexpected field order: %q, %q", events[0].Field, events[1].Field)
	}
	if events[0].Old != 1.1 || events[0].New != 1.3 {
		t.Errorf("beta event = %v -> %v, want 1.1 -> 1.3", events[0].Old, events[0].New)
	}
	if events[1].Old != 0.025 || events[1].New != 0.03 {
		t.Errorf("terminal_growth event = %v -> %v, want 0.025 -> 0.03", events[1].Old, events[1].New)
	}
	for _, ev := range events {
		if ev.ID == "" {
			t.Error("event missing ID")
		}
		if ev.Scenario != "base" {
			t.Errorf("scenario = %q, want base", ev.Scenario)
		}
	}
}

func TestRecordNoChangesNoEvents(t *testing.T) {
	sink := NewMemorySink(0)
	log := NewLog(sink)

	a := assumption.Default()
	if err := log.Record(context.Background(), "base", a, a); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if got := len(sink.Events()); got != 0 {
		t.Errorf("identical records produced %d events, want 0", got)
	}
}

func TestMemorySinkRing(t *testing.T) {
	sink := NewMemorySink(3)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := sink.Append(ctx, Event{ID: string(rune('a' + i))}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	events := sink.Events()
	if len(events) != 3 {
		t.Fatalf("ring kept %d events, want 3", len(events))
	}
	if events[0].ID != "c" || events[2].ID != "e" {
		t.Errorf("ring kept wrong window: %+v", events)
	}
}

func TestPostgresSinkNilPoolNoOp(t *testing.T) {
	sink := NewPostgresSink(nil)
	ctx := context.Background()
	if err := sink.InitSchema(ctx); err != nil {
		t.Errorf("InitSchema with nil pool: %v", err)
	}
	if err := sink.Append(ctx, Event{ID: "x"}); err != nil {
		t.Errorf("Append with nil pool: %v", err)
	}
}
