package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/valuescreen/pkg/logger"
)

// countingJob fails its first failures runs
type countingJob struct {
	name     string
	schedule string
	failures int32
	calls    atomic.Int32
}

func (j *countingJob) Name() string { return j.name }
func (j *countingJob) Schedule() string { return j.schedule }

func (j *countingJob) Run(ctx context.Context) error {
	n := j.calls.Add(1)
	if n <= j.failures {
		return fmt.Errorf("attempt %d failed", n)
	}
	return nil
}

func fastOptions() Options {
	return Options{MaxRetries: 2, RetryDelay: time.Millisecond}
}

func TestScheduler_AddRemoveJob(t *testing.T) {
	s := New(logger.Nop(), fastOptions())

	require.NoError(t, s.AddJob(&countingJob{name: "b", schedule: "@every 1h"}))
	require.NoError(t, s.AddJob(&countingJob{name: "a", schedule: "0 0 22 * * *"}))
	assert.Equal(t, []string{"a", "b"}, s.GetAllJobs())

	err := s.AddJob(&countingJob{name: "a", schedule: "@daily"})
	assert.ErrorContains(t, err, "already exists")

	err = s.AddJob(&countingJob{name: "c", schedule: "not a schedule"})
	assert.ErrorContains(t, err, "failed to schedule")

	require.NoError(t, s.RemoveJob("a"))
	assert.Equal(t, []string{"b"}, s.GetAllJobs())
	assert.Error(t, s.RemoveJob("a"))
}

func TestScheduler_RunJobNow(t *testing.T) {
	tests := []struct {
		name         string
		failures     int32
		wantSuccess  bool
		wantAttempts int
	}{
		{"first try", 0, true, 1},
		{"succeeds on retry", 2, true, 3},
		{"exhausts retries", 5, false, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(logger.Nop(), fastOptions())
			job := &countingJob{name: "job", schedule: "@daily", failures: tt.failures}
			require.NoError(t, s.AddJob(job))

			result, err := s.RunJobNow(context.Background(), "job")
			require.NoError(t, err)

			assert.Equal(t, tt.wantSuccess, result.Success)
			assert.Equal(t, tt.wantAttempts, result.Attempts)
			assert.Equal(t, int32(tt.wantAttempts), job.calls.Load())
			if tt.wantSuccess {
				assert.Empty(t, result.Error)
			} else {
				assert.Equal(t, "attempt 3 failed", result.Error)
			}

			history, err := s.GetJobHistory("job")
			require.NoError(t, err)
			require.Len(t, history, 1)
			assert.Equal(t, tt.wantSuccess, history[0].Success)
		})
	}
}

func TestScheduler_RunJobNowUnknown(t *testing.T) {
	s := New(logger.Nop(), fastOptions())

	_, err := s.RunJobNow(context.Background(), "missing")
	assert.ErrorContains(t, err, "not found")
	assert.Error(t, s.RunJob("missing"))
}

func TestScheduler_RetryStopsOnCancel(t *testing.T) {
	s := New(logger.Nop(), Options{MaxRetries: 3, RetryDelay: time.Hour})
	job := &countingJob{name: "job", schedule: "@daily", failures: 10}
	require.NoError(t, s.AddJob(job))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.RunJobNow(ctx, "job")
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 1, result.Attempts)
	assert.Contains(t, result.Error, "retry cancelled")
}

func TestScheduler_StopInterruptsRunJobNow(t *testing.T) {
	s := New(logger.Nop(), Options{MaxRetries: 3, RetryDelay: time.Hour})
	job := &countingJob{name: "job", schedule: "@daily", failures: 10}
	require.NoError(t, s.AddJob(job))

	done := make(chan JobResult, 1)
	go func() {
		result, _ := s.RunJobNow(context.Background(), "job")
		done <- result
	}()

	require.Eventually(t, func() bool { return job.calls.Load() == 1 }, time.Second, time.Millisecond)
	s.Stop()

	select {
	case result := <-done:
		assert.False(t, result.Success)
		assert.Equal(t, 1, result.Attempts)
		assert.Contains(t, result.Error, "retry cancelled")
	case <-time.After(5 * time.Second):
		t.Fatal("RunJobNow kept waiting after Stop")
	}
}

func TestScheduler_RunJobInBackground(t *testing.T) {
	s := New(logger.Nop(), fastOptions())
	job := &countingJob{name: "job", schedule: "@daily"}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunJob("job"))

	assert.Eventually(t, func() bool {
		history, err := s.GetJobHistory("job")
		return err == nil && len(history) == 1
	}, time.Second, 5*time.Millisecond)

	s.Start()
	s.Stop()
}

func TestScheduler_GetJobStats(t *testing.T) {
	s := New(logger.Nop(), Options{MaxRetries: 0, RetryDelay: time.Millisecond})
	job := &countingJob{name: "job", schedule: "@daily", failures: 1}
	require.NoError(t, s.AddJob(job))

	stats := s.GetJobStats()
	require.Contains(t, stats, "job")
	assert.Equal(t, 0, stats["job"].TotalRuns)
	assert.Nil(t, stats["job"].LastRun)

	_, err := s.RunJobNow(context.Background(), "job") // fails
	require.NoError(t, err)
	_, err = s.RunJobNow(context.Background(), "job") // succeeds
	require.NoError(t, err)

	got := s.GetJobStats()["job"]
	assert.Equal(t, "@daily", got.Schedule)
	assert.Equal(t, 2, got.TotalRuns)
	assert.Equal(t, 1, got.SuccessCount)
	assert.Equal(t, 1, got.FailureCount)
	assert.InDelta(t, 0.5, got.SuccessRate, 1e-9)
	require.NotNil(t, got.LastRun)
	assert.NotNil(t, got.LastSuccess)
	assert.Nil(t, got.LastFailure)
}

func TestJobHistory(t *testing.T) {
	h := &JobHistory{}
	assert.Equal(t, 0.0, h.GetSuccessRate())
	assert.Empty(t, h.GetLatestResults(5))

	_, ok := h.LastResult()
	assert.False(t, ok)

	for i := 0; i < maxHistory+20; i++ {
		h.AddResult(JobResult{JobName: "job", Attempts: i, Success: i%4 != 0})
	}

	require.Len(t, h.Results, maxHistory)
	assert.Equal(t, 20, h.Results[0].Attempts)

	latest := h.GetLatestResults(3)
	require.Len(t, latest, 3)
	assert.Equal(t, maxHistory+19, latest[2].Attempts)

	// Copies do not alias the history
	latest[0].Attempts = -1
	assert.NotEqual(t, -1, h.Results[maxHistory-3].Attempts)

	assert.Len(t, h.GetFailedResults(), maxHistory/4)
	assert.InDelta(t, 0.75, h.GetSuccessRate(), 1e-9)

	last, ok := h.LastResult()
	assert.True(t, ok)
	assert.Equal(t, maxHistory+19, last.Attempts)
}

var errBoom = errors.New("boom")

type failingJob struct{}

func (failingJob) Name() string { return "failing" }
func (failingJob) Schedule() string { return "@daily" }
func (failingJob) Run(ctx context.Context) error { return errBoom }

func TestScheduler_FailingJobRecordsError(t *testing.T) {
	s := New(logger.Nop(), Options{MaxRetries: 1, RetryDelay: time.Millisecond})
	require.NoError(t, s.AddJob(failingJob{}))

	result, err := s.RunJobNow(context.Background(), "failing")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Attempts)
	assert.Equal(t, errBoom.Error(), result.Error)
}
