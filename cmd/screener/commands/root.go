package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	thresholdsFile string
	concurrency    int
	verbose        bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "screener",
	Short: "Fundamentals screener - 재무제표 기반 퀄리티/밸류 스크리닝",
	Long: `Fundamentals Screener CLI

재무제표(financials-reported) 데이터를 표준 재무비율로 변환하고
퀄리티/밸류 스크린과 종합 점수로 종목을 순위화합니다.

Usage:
  go run ./cmd/screener [command]

Examples:
  go run ./cmd/screener screen data/AAPL.json data/MSFT.json --market data/market.yaml
  go run ./cmd/screener import data/*.json --market data/market.yaml
  go run ./cmd/screener rescreen
  go run ./cmd/screener api
  go run ./cmd/screener thresholds validate config/thresholds.yaml`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// Commands see a context that is cancelled on Ctrl+C / SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&thresholdsFile, "thresholds", "", "thresholds YAML file (default: THRESHOLDS_FILE or built-in defaults)")
	rootCmd.PersistentFlags().IntVar(&concurrency, "concurrency", 0, "tickers evaluated in parallel (default: SCREEN_CONCURRENCY)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}
