package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/wonny/valuescreen/internal/pipeline"
	"github.com/wonny/valuescreen/internal/store"
	"github.com/wonny/valuescreen/internal/thresholds"
	"github.com/wonny/valuescreen/pkg/config"
	"github.com/wonny/valuescreen/pkg/database"
	"github.com/wonny/valuescreen/pkg/logger"
)

// app bundles what every command needs
type app struct {
	cfg *config.Config
	log *logger.Logger
}

// loadApp loads config and applies the global flags.
// Logs go to stderr so tables on stdout stay clean.
func loadApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if thresholdsFile != "" {
		cfg.Screening.ThresholdsFile = thresholdsFile
	}
	if concurrency > 0 {
		cfg.Screening.Concurrency = concurrency
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	return &app{
		cfg: cfg,
		log: logger.NewWithWriter(cfg, os.Stderr),
	}, nil
}

// newEvaluator builds the screening pipeline from the configured thresholds
func (a *app) newEvaluator() (*pipeline.Evaluator, error) {
	th, err := thresholds.LoadOrDefault(a.cfg.Screening.ThresholdsFile)
	if err != nil {
		return nil, fmt.Errorf("load thresholds: %w", err)
	}

	for _, w := range thresholds.Warn(th) {
		a.log.WithField("code", w.Code).Warn(w.Message)
	}

	pcfg := pipeline.DefaultConfig()
	pcfg.Thresholds = *th
	pcfg.Concurrency = a.cfg.Screening.Concurrency

	return pipeline.NewEvaluator(pcfg, a.log)
}

// storeHandle is an open database with its repositories
type storeHandle struct {
	db     *database.DB
	inputs *store.InputRepository
	runs   *store.RunRepository
}

func (s *storeHandle) Close() {
	s.db.Close()
}

// openStore connects to DATABASE_URL and makes sure the schema exists
func (a *app) openStore(ctx context.Context) (*storeHandle, error) {
	db, err := database.New(ctx, a.cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := store.EnsureSchema(ctx, db.Pool); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	a.log.Debug("Connected to database")

	return &storeHandle{
		db:     db,
		inputs: store.NewInputRepository(db.Pool),
		runs:   store.NewRunRepository(db.Pool),
	}, nil
}
