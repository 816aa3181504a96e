package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaStatements create the screener schema; every statement is idempotent
var schemaStatements = []string{
	`CREATE SCHEMA IF NOT EXISTS screener`,
	`CREATE TABLE IF NOT EXISTS screener.reported_inputs (
		ticker     TEXT PRIMARY KEY,
		price      DOUBLE PRECISION,
		shares     DOUBLE PRECISION,
		payload    JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS screener.screen_runs (
		id              UUID PRIMARY KEY,
		created_at      TIMESTAMPTZ NOT NULL,
		thresholds_hash TEXT NOT NULL,
		ticker_count    INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS screener.screen_results (
		run_id          UUID NOT NULL REFERENCES screener.screen_runs(id) ON DELETE CASCADE,
		ticker          TEXT NOT NULL,
		rank            INTEGER NOT NULL,
		composite_score INTEGER NOT NULL,
		verdict         TEXT NOT NULL,
		price           DOUBLE PRECISION,
		shares          DOUBLE PRECISION,
		quality         JSONB NOT NULL,
		value           JSONB NOT NULL,
		fundamentals    JSONB NOT NULL,
		error           TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (run_id, ticker)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_screen_runs_created_at ON screener.screen_runs (created_at DESC)`,
}

// EnsureSchema creates the screener tables if they do not exist
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
