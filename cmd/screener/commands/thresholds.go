package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/valuescreen/internal/thresholds"
)

// thresholdsCmd represents the thresholds command
var thresholdsCmd = &cobra.Command{
	Use:   "thresholds",
	Short: "스크린 임계값 출력",
	Long: `현재 적용되는 임계값(YAML)과 해시를 출력합니다.
--thresholds 또는 THRESHOLDS_FILE 이 없으면 기본값을 출력합니다.

Example:
  go run ./cmd/screener thresholds > config/thresholds.yaml
  go run ./cmd/screener thresholds validate config/thresholds.yaml`,
	Args: cobra.NoArgs,
	RunE: printThresholds,
}

var thresholdsValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "임계값 파일 검증",
	Args:  cobra.ExactArgs(1),
	RunE:  validateThresholds,
}

func init() {
	rootCmd.AddCommand(thresholdsCmd)
	thresholdsCmd.AddCommand(thresholdsValidateCmd)
}

func printThresholds(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	cfg, err := thresholds.LoadOrDefault(a.cfg.Screening.ThresholdsFile)
	if err != nil {
		return err
	}

	data, err := thresholds.Marshal(cfg)
	if err != nil {
		return err
	}
	hash, err := thresholds.Hash(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# sha256: %s\n", hash)
	_, err = out.Write(data)
	return err
}

func validateThresholds(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, _, err := thresholds.Load(args[0])
	if err != nil {
		PrintError(out, err.Error())
		return err
	}

	warnings := thresholds.Warn(cfg)
	for _, w := range warnings {
		PrintWarning(out, fmt.Sprintf("[%s] %s", w.Code, w.Message))
	}

	hash, err := thresholds.Hash(cfg)
	if err != nil {
		return err
	}

	PrintSuccess(out, fmt.Sprintf("%s is valid (%d warnings, sha256 %s)", args[0], len(warnings), shortHash(hash)))
	return nil
}
