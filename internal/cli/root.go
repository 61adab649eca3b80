// Package cli implements the nexus command line: an interactive menu, a
// sentence mode and a small HTTP server mode over the same task service.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nexus-ia/notion-automation/internal/client/notion"
	"github.com/nexus-ia/notion-automation/internal/config"
	"github.com/nexus-ia/notion-automation/internal/interpreter"
	"github.com/nexus-ia/notion-automation/internal/repository"
	"github.com/nexus-ia/notion-automation/internal/service"
)

var rootCmd = &cobra.Command{
	Use:   "nexus",
	Short: "Automates a Notion task database for the semester",
	Long: `nexus creates, lists, updates and archives task records in a Notion
database. Run it with no arguments for the interactive menu, or use
"nexus add" with a sentence to let the interpreter fill in the fields:

  nexus add networks exam next friday, it's important`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()
		return app.runMenu(cmd.Context())
	},
}

func Execute() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

// app bundles everything a command needs. Construction fails fast on
// missing credentials, before any prompt is shown.
type app struct {
	cfg         *config.Config
	taskService *service.TaskService
	db          *sql.DB
	logger      *zap.Logger
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return newAppWithConfig(cfg, zap.NewNop())
}

func newAppWithConfig(cfg *config.Config, logger *zap.Logger) (*app, error) {
	notionClient := notion.NewNotionClient(cfg.NotionToken, cfg.NotionDatabaseId)

	var interp interpreter.Interpreter = interpreter.NewHeuristicInterpreter()
	if cfg.LLMEnabled() {
		llm, err := interpreter.NewLLMInterpreter(interpreter.LLMConfig{
			APIKey:  cfg.OpenAIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseUrl,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, warnStyle.Render(
				"Warning: could not start the LLM interpreter, using the offline parser: "+err.Error()))
		} else {
			interp = llm
		}
	}

	db, err := repository.InitDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("init journal db: %w", err)
	}
	journalRepo := repository.NewJournalRepository(db)

	return &app{
		cfg:         cfg,
		taskService: service.NewTaskService(notionClient, interp, journalRepo, logger),
		db:          db,
		logger:      logger,
	}, nil
}

func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
