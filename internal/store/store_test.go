package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/valuescreen/internal/contracts"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, EnsureSchema(ctx, pool))
	// Idempotent
	require.NoError(t, EnsureSchema(ctx, pool))
	return pool
}

func ptr(v float64) *float64 {
	return &v
}

func TestInputRepository(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewInputRepository(pool)

	ticker := "TEST-" + uuid.NewString()[:8]
	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, "DELETE FROM screener.reported_inputs WHERE ticker = $1", ticker)
	})

	err := repo.SaveInput(ctx, &contracts.StoredInput{
		Ticker:  ticker,
		Price:   ptr(101.5),
		Payload: []byte(`{"data": []}`),
	})
	require.NoError(t, err)

	// Upsert replaces market data
	err = repo.SaveInput(ctx, &contracts.StoredInput{
		Ticker:  ticker,
		Price:   ptr(99),
		Shares:  ptr(15.5),
		Payload: []byte(`{"data": [{"year": 2024, "quarter": 1, "report": {}}]}`),
	})
	require.NoError(t, err)

	got, err := repo.GetInput(ctx, ticker)
	require.NoError(t, err)
	require.NotNil(t, got.Price)
	assert.Equal(t, 99.0, *got.Price)
	require.NotNil(t, got.Shares)
	assert.Equal(t, 15.5, *got.Shares)
	assert.Contains(t, string(got.Payload), "2024")
	assert.WithinDuration(t, time.Now(), got.UpdatedAt, time.Minute)

	all, err := repo.ListInputs(ctx)
	require.NoError(t, err)
	found := false
	for _, in := range all {
		if in.Ticker == ticker {
			found = true
		}
	}
	assert.True(t, found)

	_, err = repo.GetInput(ctx, ticker+"-missing")
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.SaveInput(ctx, &contracts.StoredInput{Ticker: ticker, Payload: []byte("not json")})
	assert.Error(t, err)
}

func TestRunRepository(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewRunRepository(pool)

	run := &contracts.Run{
		ID:             uuid.NewString(),
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
		ThresholdsHash: "abc123",
		Results: []contracts.RankedTicker{
			{
				Rank: 1,
				Evaluation: contracts.Evaluation{
					Ticker:       "GOOD",
					Price:        ptr(144),
					Shares:       ptr(10_000_000),
					Fundamentals: contracts.Fundamentals{ROIC: ptr(0.15)},
					Quality:      contracts.ScreenResult{Screen: contracts.ScreenQuality, Passed: true, Score: 90, Reasons: []string{"ROIC ok"}},
					Value:        contracts.ScreenResult{Screen: contracts.ScreenValue, Score: 70, Reasons: []string{"PE missing (data coverage)"}},
					Composite:    contracts.CompositeScore{Score: 83, Verdict: contracts.VerdictStrong},
				},
			},
			{
				Rank: 2,
				Evaluation: contracts.Evaluation{
					Ticker:    "BAD",
					Composite: contracts.CompositeScore{Score: 0, Verdict: contracts.VerdictWeak},
					Error:     "decode financials payload: invalid character",
				},
			},
		},
	}
	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, "DELETE FROM screener.screen_runs WHERE id = $1", run.ID)
	})

	require.NoError(t, repo.SaveRun(ctx, run))

	got, err := repo.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "abc123", got.ThresholdsHash)
	assert.True(t, run.CreatedAt.Equal(got.CreatedAt))
	require.Equal(t, 2, got.Count())

	good := got.Results[0]
	assert.Equal(t, "GOOD", good.Ticker)
	assert.Equal(t, 83, good.Composite.Score)
	assert.Equal(t, contracts.VerdictStrong, good.Composite.Verdict)
	assert.Equal(t, []string{"ROIC ok"}, good.Quality.Reasons)
	require.NotNil(t, good.Fundamentals.ROIC)
	assert.Equal(t, 0.15, *good.Fundamentals.ROIC)
	assert.Nil(t, good.Fundamentals.PriceEarnings)

	bad := got.Results[1]
	assert.Equal(t, "BAD", bad.Ticker)
	assert.True(t, bad.Failed())
	assert.Nil(t, bad.Price)

	latest, err := repo.LatestRunID(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, latest)

	_, err = repo.GetRun(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}
