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

// ErrNotFound is returned when a ticker or run does not exist
var ErrNotFound = errors.New("not found")

// InputRepository persists raw per-ticker inputs
// ⭐ SSOT: 원본 재무 입력 저장/조회는 여기서만
type InputRepository struct {
	pool *pgxpool.Pool
}

var _ contracts.InputRepository = (*InputRepository)(nil)

// NewInputRepository creates a new input repository
func NewInputRepository(pool *pgxpool.Pool) *InputRepository {
	return &InputRepository{pool: pool}
}

// SaveInput upserts a ticker's payload and market data
func (r *InputRepository) SaveInput(ctx context.Context, input *contracts.StoredInput) error {
	if !json.Valid(input.Payload) {
		return fmt.Errorf("payload for %s is not valid JSON", input.Ticker)
	}

	query := `
		INSERT INTO screener.reported_inputs (ticker, price, shares, payload, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (ticker) DO UPDATE SET
			price = EXCLUDED.price,
			shares = EXCLUDED.shares,
			payload = EXCLUDED.payload,
			updated_at = NOW()
	`

	_, err := r.pool.Exec(ctx, query, input.Ticker, input.Price, input.Shares, input.Payload)
	if err != nil {
		return fmt.Errorf("failed to save input %s: %w", input.Ticker, err)
	}

	return nil
}

// GetInput retrieves one ticker's stored input
func (r *InputRepository) GetInput(ctx context.Context, ticker string) (*contracts.StoredInput, error) {
	query := `
		SELECT ticker, price, shares, payload, updated_at
		FROM screener.reported_inputs
		WHERE ticker = $1
	`

	input, err := scanInput(r.pool.QueryRow(ctx, query, ticker))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("input %s: %w", ticker, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get input %s: %w", ticker, err)
	}

	return input, nil
}

// ListInputs retrieves every stored input ordered by ticker
func (r *InputRepository) ListInputs(ctx context.Context) ([]*contracts.StoredInput, error) {
	query := `
		SELECT ticker, price, shares, payload, updated_at
		FROM screener.reported_inputs
		ORDER BY ticker ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query inputs: %w", err)
	}
	defer rows.Close()

	inputs := make([]*contracts.StoredInput, 0)
	for rows.Next() {
		input, err := scanInput(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan input: %w", err)
		}
		inputs = append(inputs, input)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inputs: %w", err)
	}

	return inputs, nil
}

func scanInput(row pgx.Row) (*contracts.StoredInput, error) {
	var input contracts.StoredInput
	if err := row.Scan(&input.Ticker, &input.Price, &input.Shares, &input.Payload, &input.UpdatedAt); err != nil {
		return nil, err
	}
	return &input, nil
}
