package commands

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/wonny/valuescreen/internal/selection"
	"github.com/wonny/valuescreen/internal/store"
)

// runsCmd represents the runs command
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "저장된 스크리닝 실행 결과 조회",
}

var runsShowCmd = &cobra.Command{
	Use:   "show [run_id]",
	Short: "실행 결과 출력 (기본: 최신)",
	Long: `저장된 실행 결과를 출력합니다. run_id 를 생략하면 가장 최근 실행을 보여줍니다.

Example:
  go run ./cmd/screener runs show
  go run ./cmd/screener runs show 3f1c... --reasons --passed-only`,
	Args: cobra.MaximumNArgs(1),
	RunE: showRun,
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsShowCmd)

	addListFlags(runsShowCmd)
}

func showRun(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	st, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	var id string
	if len(args) == 1 {
		if _, err := uuid.Parse(args[0]); err != nil {
			return fmt.Errorf("invalid run id %q: %w", args[0], err)
		}
		id = args[0]
	} else {
		id, err = st.runs.LatestRunID(ctx)
		if errors.Is(err, store.ErrNotFound) {
			PrintWarning(cmd.OutOrStdout(), "No screening runs stored yet.")
			return nil
		}
		if err != nil {
			return err
		}
	}

	run, err := st.runs.GetRun(ctx, id)
	if err != nil {
		return fmt.Errorf("get run %s: %w", id, err)
	}

	shown := selection.Filter(run.Results, listFilter, a.log)
	return printRun(cmd.OutOrStdout(), "Screening run "+run.ID, run, shown)
}
