package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import [files...]",
	Short: "재무 데이터 파일을 DB에 저장",
	Long: `financials-reported JSON 파일과 시장 데이터를 screener.reported_inputs 에 저장합니다.
같은 티커는 덮어씁니다. 저장된 데이터는 rescreen 과 스케줄러가 사용합니다.

Example:
  go run ./cmd/screener import data/*.json --market data/market.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

var importMarketFile string

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&importMarketFile, "market", "", "market data YAML (ticker -> price, shares)")
}

func runImport(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	market, err := LoadMarketData(importMarketFile)
	if err != nil {
		return err
	}

	inputs, err := ReadInputs(args, market)
	if err != nil {
		return err
	}

	st, err := a.openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	out := cmd.OutOrStdout()
	for _, input := range inputs {
		if err := st.inputs.SaveInput(cmd.Context(), input); err != nil {
			PrintError(out, fmt.Sprintf("%s: %v", input.Ticker, err))
			return fmt.Errorf("import %s: %w", input.Ticker, err)
		}
		a.log.WithTicker(input.Ticker).Debug("Input saved")
	}

	a.log.Infof("Imported %d tickers", len(inputs))
	PrintSuccess(out, fmt.Sprintf("Imported %d tickers", len(inputs)))
	return nil
}
