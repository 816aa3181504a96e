package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/valuescreen/internal/selection"
)

// rescreenCmd represents the rescreen command
var rescreenCmd = &cobra.Command{
	Use:   "rescreen",
	Short: "저장된 전 종목 재스크리닝",
	Long: `DB에 저장된 모든 종목을 현재 임계값으로 다시 평가하고 실행 결과를 저장합니다.

Example:
  go run ./cmd/screener rescreen
  go run ./cmd/screener rescreen --thresholds config/strict.yaml --dry-run`,
	Args: cobra.NoArgs,
	RunE: runRescreen,
}

var dryRun bool

func init() {
	rootCmd.AddCommand(rescreenCmd)

	rescreenCmd.Flags().BoolVar(&dryRun, "dry-run", false, "evaluate without saving the run")
	addListFlags(rescreenCmd)
}

func runRescreen(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	evaluator, err := a.newEvaluator()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	st, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	inputs, err := st.inputs.ListInputs(ctx)
	if err != nil {
		return fmt.Errorf("list inputs: %w", err)
	}
	if len(inputs) == 0 {
		PrintWarning(cmd.OutOrStdout(), "No stored inputs. Run `screener import` first.")
		return nil
	}

	run, err := evaluator.Run(ctx, inputs)
	if err != nil {
		return err
	}

	if dryRun {
		a.log.Warnf("Dry run: run %s not saved", run.ID)
	} else if err := st.runs.SaveRun(ctx, run); err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	shown := selection.Filter(run.Results, listFilter, a.log)
	if err := printRun(cmd.OutOrStdout(), fmt.Sprintf("Rescreened %d tickers", len(inputs)), run, shown); err != nil {
		return err
	}

	if !dryRun && !asJSON {
		PrintSuccess(cmd.OutOrStdout(), "Run saved: "+run.ID)
	}
	return nil
}
