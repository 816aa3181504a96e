package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/wonny/valuescreen/internal/contracts"
	"github.com/wonny/valuescreen/internal/fundamentals"
	"github.com/wonny/valuescreen/internal/reported"
	"github.com/wonny/valuescreen/internal/screening"
	"github.com/wonny/valuescreen/internal/selection"
	"github.com/wonny/valuescreen/internal/thresholds"
	"github.com/wonny/valuescreen/pkg/logger"
)

// Config configures an Evaluator
type Config struct {
	Thresholds  thresholds.Config
	Concepts    reported.ConceptTable
	Concurrency int // tickers evaluated in parallel
}

// DefaultConfig returns default thresholds, the default concept table and 8 workers
func DefaultConfig() Config {
	return Config{
		Thresholds:  thresholds.Default(),
		Concepts:    reported.DefaultConcepts(),
		Concurrency: 8,
	}
}

// Evaluator screens tickers end to end: ingest -> fundamentals -> screens -> composite -> rank
// ⭐ SSOT: 종목 평가 파이프라인은 여기서만
type Evaluator struct {
	concepts       reported.ConceptTable
	thresholds     thresholds.Config
	thresholdsHash string
	quality        contracts.Screen
	value          contracts.Screen
	ranker         *selection.Ranker
	concurrency    int
	logger         *logger.Logger
}

var _ contracts.TickerEvaluator = (*Evaluator)(nil)

// NewEvaluator creates an evaluator. Thresholds are validated up front.
func NewEvaluator(cfg Config, log *logger.Logger) (*Evaluator, error) {
	if err := thresholds.Validate(&cfg.Thresholds); err != nil {
		return nil, fmt.Errorf("invalid thresholds: %w", err)
	}

	hash, err := thresholds.Hash(&cfg.Thresholds)
	if err != nil {
		return nil, fmt.Errorf("failed to hash thresholds: %w", err)
	}

	if cfg.Concepts == nil {
		cfg.Concepts = reported.DefaultConcepts()
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}

	return &Evaluator{
		concepts:       cfg.Concepts,
		thresholds:     cfg.Thresholds,
		thresholdsHash: hash,
		quality:        screening.NewQualityScreen(cfg.Thresholds.Quality),
		value:          screening.NewValueScreen(cfg.Thresholds.Value),
		ranker:         selection.NewRanker(log),
		concurrency:    cfg.Concurrency,
		logger:         log,
	}, nil
}

// Thresholds returns the thresholds in effect
func (e *Evaluator) Thresholds() thresholds.Config {
	return e.thresholds
}

// ThresholdsHash returns the fingerprint stored with every run
func (e *Evaluator) ThresholdsHash() string {
	return e.thresholdsHash
}

// Evaluate screens one ticker whose periods are already parsed
func (e *Evaluator) Evaluate(ctx context.Context, input contracts.TickerInput) contracts.Evaluation {
	periods := make([]contracts.Period, len(input.Periods))
	copy(periods, input.Periods)
	reported.SortPeriods(periods)

	shares := fundamentals.NormalizeShares(input.SharesOutstanding)
	f := fundamentals.Build(periods, e.concepts)
	f = fundamentals.WithValuation(f, input.Price, shares)

	quality := e.quality.Evaluate(&f)
	value := e.value.Evaluate(&f)
	composite := selection.Composite(quality.Score, value.Score)

	e.logger.WithFields(map[string]interface{}{
		"ticker":        input.Ticker,
		"periods":       len(periods),
		"coverage":      f.Coverage(),
		"quality_score": quality.Score,
		"value_score":   value.Score,
		"composite":     composite.Score,
	}).Debug("Evaluated ticker")

	return contracts.Evaluation{
		Ticker:       input.Ticker,
		Price:        input.Price,
		Shares:       shares,
		Fundamentals: f,
		Quality:      quality,
		Value:        value,
		Composite:    composite,
	}
}

// EvaluateRaw ingests a stored financials payload and screens it.
// An unreadable payload becomes an error row instead of an error.
func (e *Evaluator) EvaluateRaw(ctx context.Context, raw *contracts.StoredInput) contracts.Evaluation {
	input, err := ToTickerInput(raw)
	if err != nil {
		e.logger.WithTicker(raw.Ticker).WithError(err).Warn("Failed to ingest financials")
		return contracts.Evaluation{
			Ticker: raw.Ticker,
			Price:  raw.Price,
			Error:  err.Error(),
		}
	}
	return e.Evaluate(ctx, input)
}

// Run evaluates every input in parallel and ranks the results.
// Only context cancellation aborts a run; per-ticker failures become error rows.
func (e *Evaluator) Run(ctx context.Context, inputs []*contracts.StoredInput) (*contracts.Run, error) {
	start := time.Now()
	evaluations := make([]contracts.Evaluation, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, raw := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			evaluations[i] = e.EvaluateRaw(gctx, raw)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("screening run aborted: %w", err)
	}

	run := &contracts.Run{
		ID:             uuid.NewString(),
		CreatedAt:      time.Now().UTC(),
		ThresholdsHash: e.thresholdsHash,
		Results:        e.ranker.Rank(evaluations),
	}

	e.logger.WithFields(map[string]interface{}{
		"run_id":      run.ID,
		"tickers":     len(inputs),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Screening run completed")

	return run, nil
}

// ToTickerInput parses a stored payload into periods
func ToTickerInput(raw *contracts.StoredInput) (contracts.TickerInput, error) {
	periods, err := reported.ParsePeriods(raw.Payload)
	if err != nil {
		return contracts.TickerInput{}, fmt.Errorf("%s: %w", raw.Ticker, err)
	}

	return contracts.TickerInput{
		Ticker:            raw.Ticker,
		Price:             raw.Price,
		SharesOutstanding: raw.Shares,
		Periods:           periods,
	}, nil
}
