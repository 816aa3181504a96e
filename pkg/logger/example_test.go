package logger_test

import (
	"errors"

	"github.com/wonny/valuescreen/pkg/config"
	"github.com/wonny/valuescreen/pkg/logger"
)

// Example_basic demonstrates basic logger usage
func Example_basic() {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "info",
		LogFormat: "console",
	}

	log := logger.New(cfg)

	log.Debug("This won't appear (level is info)")
	log.Info("Screening started")
	log.Infof("Universe size: %d", 500)
}

// Example_withFields demonstrates structured logging with fields
func Example_withFields() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	log.WithTicker("AAPL").WithFields(map[string]interface{}{
		"quality_score": 90,
		"value_score":   70,
		"composite":     83,
	}).Info("Ticker screened")

	log.WithError(errors.New("payload is not JSON")).Error("Ingest failed")
}
