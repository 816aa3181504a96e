package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/valuescreen/internal/scheduler"
	"github.com/wonny/valuescreen/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "스케줄러 관리",
	Long: `재스크리닝 스케줄러를 시작하거나 작업을 즉시 실행합니다.

Subcommands:
  start   - 스케줄러 시작 (RESCREEN_SCHEDULE, 기본 매일 22시)
  run     - 특정 작업 즉시 실행

Example:
  go run ./cmd/screener scheduler start
  go run ./cmd/screener scheduler run rescreen`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "스케줄러 시작",
		Args:  cobra.NoArgs,
		RunE:  runScheduler,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "특정 작업 즉시 실행",
		Args:  cobra.ExactArgs(1),
		RunE:  runJobNow,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

// initScheduler registers every job against an open store
func initScheduler(cmd *cobra.Command, a *app) (*scheduler.Scheduler, *storeHandle, error) {
	evaluator, err := a.newEvaluator()
	if err != nil {
		return nil, nil, err
	}

	st, err := a.openStore(cmd.Context())
	if err != nil {
		return nil, nil, err
	}

	sched := scheduler.New(a.log, scheduler.DefaultOptions())

	rescreen := jobs.NewRescreenJob(st.inputs, st.runs, evaluator, a.cfg.Screening.RescreenSchedule, a.log)
	if err := sched.AddJob(rescreen); err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("add rescreen job: %w", err)
	}

	return sched, st, nil
}

func runScheduler(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	sched, st, err := initScheduler(cmd, a)
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer st.Close()

	sched.Start()

	out := cmd.OutOrStdout()
	PrintSuccess(out, "Scheduler started")
	fmt.Fprintln(out, "\nRegistered jobs:")
	stats := sched.GetJobStats()
	for _, name := range sched.GetAllJobs() {
		PrintKeyValue(out, name, stats[name].Schedule, 10)
	}
	fmt.Fprintln(out, "\nPress Ctrl+C to stop")

	<-cmd.Context().Done()

	sched.Stop()
	return nil
}

func runJobNow(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	sched, st, err := initScheduler(cmd, a)
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer st.Close()

	result, err := sched.RunJobNow(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !result.Success {
		PrintError(out, fmt.Sprintf("%s failed after %d attempts: %s", result.JobName, result.Attempts, result.Error))
		return fmt.Errorf("job %s failed", result.JobName)
	}

	PrintSuccess(out, fmt.Sprintf("%s completed in %s", result.JobName, result.Duration.Round(time.Millisecond)))
	return nil
}
