package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var archiveCmd = &cobra.Command{
	Use:   "archive <page-id>",
	Short: "Archive (soft-delete) a task",
	Long: `Archive a task by page id. Archiving never deletes the page, it
only flags it, and archiving an already archived page is not an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.taskService.Archive(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println(successStyle.Render("Task archived."))
		return nil
	},
}

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently touched tasks and their page ids",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		return app.printHistory(historyLimit)
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries")
}

func (a *app) printHistory(limit int) error {
	events, err := a.taskService.History(limit)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("No activity recorded yet.")
		return nil
	}

	fmt.Println()
	for _, e := range events {
		title := e.Title
		if title == "" {
			title = faintStyle.Render("(no title)")
		}
		fmt.Printf("  %-8s %s  %s\n", tagStyle.Render(e.Action), title,
			faintStyle.Render(humanize.Time(e.CreatedAt)))
		fmt.Printf("           %s\n", faintStyle.Render("id: "+e.PageId))
	}
	return nil
}
