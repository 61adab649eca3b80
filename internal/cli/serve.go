package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nexus-ia/notion-automation/internal/api"
	"github.com/nexus-ia/notion-automation/internal/config"
	"github.com/nexus-ia/notion-automation/internal/logging"
)

var (
	serveAddr  string
	serveDebug bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run a small HTTP API over the same operations:

  POST   /schedule      interpret a sentence and create the task
  POST   /tasks         create a task from explicit fields
  GET    /tasks         list tasks (subject/status/type query filters)
  PATCH  /tasks/{id}    partial update
  DELETE /tasks/{id}    archive
  GET    /tasks/events  recent local activity`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}

		logger, err := logging.New(serveDebug)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer logger.Sync()

		app, err := newAppWithConfig(cfg, logger)
		if err != nil {
			return err
		}
		defer app.Close()

		router := api.SetupRouter(app.taskService, logger)

		logger.Info("server listening",
			zap.String("addr", cfg.Addr),
			zap.Bool("llm_interpreter", cfg.LLMEnabled()),
		)
		return http.ListenAndServe(cfg.Addr, router)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides NEXUS_ADDR)")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "console debug logging")
}
