package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/valuescreen/internal/api"
	"github.com/wonny/valuescreen/internal/api/handlers"
	"github.com/wonny/valuescreen/internal/contracts"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.
DATABASE_URL 이 설정되어 있으면 실행 결과를 저장/조회할 수 있습니다.

Endpoints:
  GET  /health           - Health check
  GET  /api/thresholds   - 현재 임계값
  POST /api/screen       - 단일 종목 스크리닝
  POST /api/rank         - 다종목 스크리닝 + 순위 (save=true 로 저장)
  GET  /api/runs/{id}    - 저장된 실행 결과 조회

Example:
  go run ./cmd/screener api
  go run ./cmd/screener api --port 8080`,
	Args: cobra.NoArgs,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (default: PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	// Override port if flag is set
	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	a.log.WithFields(map[string]interface{}{
		"port": a.cfg.Port,
		"env":  a.cfg.Env,
	}).Info("Initializing API server")

	evaluator, err := a.newEvaluator()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	// Run storage is optional
	var (
		runs   contracts.RunRepository
		health api.HealthChecker
	)
	if a.cfg.Database.URL != "" {
		st, err := a.openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		runs = st.runs
		health = st.db
		a.log.Info("Connected to database")
	} else {
		a.log.Warn("DATABASE_URL not set, runs will not be stored")
	}

	screenHandler := handlers.NewScreenHandler(evaluator, runs, a.log)
	router := api.NewRouter(screenHandler, health, a.log)
	server := api.New(a.cfg, a.log, router)

	fmt.Fprintf(cmd.OutOrStdout(), "\n✅ Server running on http://localhost:%s\n", a.cfg.Port)
	fmt.Fprintln(cmd.OutOrStdout(), "\nPress Ctrl+C to stop")

	if err := server.Run(ctx); err != nil {
		return err
	}

	a.log.Info("Server stopped")
	return nil
}
