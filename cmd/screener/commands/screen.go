package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/wonny/valuescreen/internal/contracts"
	"github.com/wonny/valuescreen/internal/selection"
)

// screenCmd represents the screen command
var screenCmd = &cobra.Command{
	Use:   "screen [files...]",
	Short: "파일 기반 스크리닝 (DB 불필요)",
	Long: `financials-reported JSON 파일을 읽어 스크리닝하고 순위표를 출력합니다.

파일 이름이 티커가 됩니다 (data/aapl.json -> AAPL).
가격과 주식수는 --market YAML 파일에서 읽습니다. 없으면 PE/PB 가 빠집니다.

Example:
  go run ./cmd/screener screen data/*.json --market data/market.yaml
  go run ./cmd/screener screen data/*.json --reasons --top 10
  go run ./cmd/screener screen data/*.json --passed-only --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScreen,
}

var (
	marketFile  string
	showReasons bool
	asJSON      bool
	listFilter  selection.FilterConfig
)

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().StringVar(&marketFile, "market", "", "market data YAML (ticker -> price, shares)")
	addListFlags(screenCmd)
}

// addListFlags registers the output and filter flags shared by commands printing a ranking
func addListFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&showReasons, "reasons", false, "print the reason behind every criterion")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the run as JSON")
	cmd.Flags().StringVar(&listFilter.Query, "query", "", "ticker substring filter")
	cmd.Flags().BoolVar(&listFilter.PassedOnly, "passed-only", false, "only tickers passing both screens")
	cmd.Flags().IntVar(&listFilter.Limit, "top", 0, "show only the first N rows")
}

func runScreen(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	market, err := LoadMarketData(marketFile)
	if err != nil {
		return err
	}

	inputs, err := ReadInputs(args, market)
	if err != nil {
		return err
	}

	evaluator, err := a.newEvaluator()
	if err != nil {
		return err
	}

	run, err := evaluator.Run(cmd.Context(), inputs)
	if err != nil {
		return err
	}

	shown := selection.Filter(run.Results, listFilter, a.log)

	return printRun(cmd.OutOrStdout(), fmt.Sprintf("Screening %d tickers", len(inputs)), run, shown)
}

// printRun prints a run as a table or, with --json, as JSON restricted to the shown rows
func printRun(out io.Writer, title string, run *contracts.Run, shown []contracts.RankedTicker) error {
	if asJSON {
		view := *run
		view.Results = shown
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	PrintHeader(out, title)
	PrintRunSummary(out, run)
	PrintRanking(out, shown, showReasons)
	return nil
}
