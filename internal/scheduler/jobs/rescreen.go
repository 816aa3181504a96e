package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/valuescreen/internal/contracts"
	"github.com/wonny/valuescreen/internal/pipeline"
	"github.com/wonny/valuescreen/pkg/logger"
)

// RescreenJob re-evaluates every stored ticker and saves the run
type RescreenJob struct {
	inputs    contracts.InputRepository
	runs      contracts.RunRepository
	evaluator *pipeline.Evaluator
	schedule  string
	logger    *logger.Logger
}

// NewRescreenJob creates a new rescreen job
func NewRescreenJob(
	inputs contracts.InputRepository,
	runs contracts.RunRepository,
	evaluator *pipeline.Evaluator,
	schedule string,
	log *logger.Logger,
) *RescreenJob {
	return &RescreenJob{
		inputs:    inputs,
		runs:      runs,
		evaluator: evaluator,
		schedule:  schedule,
		logger:    log,
	}
}

// Name returns the job name
func (j *RescreenJob) Name() string {
	return "rescreen"
}

// Schedule returns the cron schedule
func (j *RescreenJob) Schedule() string {
	return j.schedule
}

// Run executes the rescreen job
func (j *RescreenJob) Run(ctx context.Context) error {
	j.logger.Info("Starting rescreen")

	inputs, err := j.inputs.ListInputs(ctx)
	if err != nil {
		return fmt.Errorf("list inputs: %w", err)
	}

	if len(inputs) == 0 {
		j.logger.Warn("No stored inputs, skipping rescreen")
		return nil
	}

	run, err := j.evaluator.Run(ctx, inputs)
	if err != nil {
		return fmt.Errorf("screening run: %w", err)
	}

	if err := j.runs.SaveRun(ctx, run); err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	strong, failed := 0, 0
	for _, r := range run.Results {
		if r.Failed() {
			failed++
		} else if r.Composite.Verdict == contracts.VerdictStrong {
			strong++
		}
	}

	fields := map[string]interface{}{
		"run_id":  run.ID,
		"tickers": run.Count(),
		"strong":  strong,
		"failed":  failed,
	}
	if run.Count() > 0 {
		fields["top"] = run.Results[0].Ticker
	}
	j.logger.WithFields(fields).Info("Rescreen completed")

	return nil
}
