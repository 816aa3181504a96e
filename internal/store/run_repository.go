package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/valuescreen/internal/contracts"
)

// RunRepository persists screening runs and their ranked results
// ⭐ SSOT: 스크리닝 결과 저장/조회는 여기서만
type RunRepository struct {
	pool *pgxpool.Pool
}

var _ contracts.RunRepository = (*RunRepository)(nil)

// NewRunRepository creates a new run repository
func NewRunRepository(pool *pgxpool.Pool) *RunRepository {
	return &RunRepository{pool: pool}
}

// SaveRun stores a run and all of its results in one transaction
func (r *RunRepository) SaveRun(ctx context.Context, run *contracts.Run) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO screener.screen_runs (id, created_at, thresholds_hash, ticker_count)
		VALUES ($1, $2, $3, $4)
	`, run.ID, run.CreatedAt, run.ThresholdsHash, run.Count())
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	query := `
		INSERT INTO screener.screen_results (
			run_id, ticker, rank, composite_score, verdict,
			price, shares, quality, value, fundamentals, error
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	for _, res := range run.Results {
		qualityJSON, err := json.Marshal(res.Quality)
		if err != nil {
			return fmt.Errorf("failed to marshal quality result: %w", err)
		}
		valueJSON, err := json.Marshal(res.Value)
		if err != nil {
			return fmt.Errorf("failed to marshal value result: %w", err)
		}
		fundamentalsJSON, err := json.Marshal(res.Fundamentals)
		if err != nil {
			return fmt.Errorf("failed to marshal fundamentals: %w", err)
		}

		_, err = tx.Exec(ctx, query,
			run.ID, res.Ticker, res.Rank, res.Composite.Score, string(res.Composite.Verdict),
			res.Price, res.Shares, qualityJSON, valueJSON, fundamentalsJSON, res.Error,
		)
		if err != nil {
			return fmt.Errorf("failed to insert result %s: %w", res.Ticker, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetRun retrieves a run with its results ordered by rank
func (r *RunRepository) GetRun(ctx context.Context, id string) (*contracts.Run, error) {
	var run contracts.Run
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, created_at, thresholds_hash
		FROM screener.screen_runs
		WHERE id = $1
	`, id).Scan(&run.ID, &run.CreatedAt, &run.ThresholdsHash)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	results, err := r.getResults(ctx, id)
	if err != nil {
		return nil, err
	}
	run.Results = results

	return &run, nil
}

// LatestRunID returns the id of the most recent run
func (r *RunRepository) LatestRunID(ctx context.Context) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		SELECT id::text FROM screener.screen_runs
		ORDER BY created_at DESC
		LIMIT 1
	`).Scan(&id)

	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("latest run: %w", ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get latest run: %w", err)
	}

	return id, nil
}

func (r *RunRepository) getResults(ctx context.Context, id string) ([]contracts.RankedTicker, error) {
	query := `
		SELECT
			ticker, rank, composite_score, verdict,
			price, shares, quality, value, fundamentals, error
		FROM screener.screen_results
		WHERE run_id = $1
		ORDER BY rank ASC
	`

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	results := make([]contracts.RankedTicker, 0)
	for rows.Next() {
		var res contracts.RankedTicker
		var verdict string
		var qualityJSON, valueJSON, fundamentalsJSON []byte

		err := rows.Scan(
			&res.Ticker, &res.Rank, &res.Composite.Score, &verdict,
			&res.Price, &res.Shares, &qualityJSON, &valueJSON, &fundamentalsJSON, &res.Error,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		res.Composite.Verdict = contracts.Verdict(verdict)

		if err := json.Unmarshal(qualityJSON, &res.Quality); err != nil {
			return nil, fmt.Errorf("failed to unmarshal quality result: %w", err)
		}
		if err := json.Unmarshal(valueJSON, &res.Value); err != nil {
			return nil, fmt.Errorf("failed to unmarshal value result: %w", err)
		}
		if err := json.Unmarshal(fundamentalsJSON, &res.Fundamentals); err != nil {
			return nil, fmt.Errorf("failed to unmarshal fundamentals: %w", err)
		}

		results = append(results, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate results: %w", err)
	}

	return results, nil
}
