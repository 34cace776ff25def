package audit

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
)

// OpenPool connects using the DATABASE_URL environment variable. The
// database is optional for the workbench; callers fall back to the memory
// sink when this fails.
func OpenPool(ctx context.Context) (*pgxpool.Pool, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	return pgxpool.NewWithConfig(ctx, config)
}

// PostgresSink persists events to the assumption_events table. A nil pool
// makes every call a no-op so local setups without DATABASE_URL keep working.
type PostgresSink struct {
	pool *pgxpool.Pool
}

// NewPostgresSink wraps an existing pool.
func NewPostgresSink(pool *pgxpool.Pool) *PostgresSink {
	return &PostgresSink{pool: pool}
}

// InitSchema creates the events table if missing.
func (s *PostgresSink) InitSchema(ctx context.Context) error {
	if s.pool == nil {
		return nil
	}
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS assumption_events (
			id        UUID PRIMARY KEY,
			at        TIMESTAMPTZ NOT NULL,
			scenario  TEXT NOT NULL,
			field     TEXT NOT NULL,
			old_value DOUBLE PRECISION NOT NULL,
			new_value DOUBLE PRECISION NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create assumption_events: %w", err)
	}
	return nil
}

// Append implements Sink.
func (s *PostgresSink) Append(ctx context.Context, ev Event) error {
	if s.pool == nil {
		return nil
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO assumption_events (id, at, scenario, field, old_value, new_value)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, ev.ID, ev.At, ev.Scenario, ev.Field, ev.Old, ev.New)
	if err != nil {
		return fmt.Errorf("failed to insert assumption event: %w", err)
	}
	return nil
}
