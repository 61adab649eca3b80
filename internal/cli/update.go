package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nexus-ia/notion-automation/internal/models"
)

var (
	updateTitle       string
	updateSubject     string
	updateType        string
	updateStatus      string
	updatePriority    string
	updateDescription string
	updateDue         string
)

var updateCmd = &cobra.Command{
	Use:   "update <page-id>",
	Short: "Update fields of an existing task",
	Long: `Update a task by page id. Only the fields passed as flags are
changed; everything else on the page is left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch := models.TaskPatch{}
		if cmd.Flags().Changed("title") {
			patch.Title = &updateTitle
		}
		if cmd.Flags().Changed("subject") {
			patch.Subject = &updateSubject
		}
		if cmd.Flags().Changed("type") {
			patch.Type = &updateType
		}
		if cmd.Flags().Changed("status") {
			patch.Status = &updateStatus
		}
		if cmd.Flags().Changed("priority") {
			patch.Priority = &updatePriority
		}
		if cmd.Flags().Changed("description") {
			patch.Description = &updateDescription
		}
		if cmd.Flags().Changed("due") {
			t, err := time.Parse("2006-01-02", updateDue)
			if err != nil {
				return fmt.Errorf("--due must be YYYY-MM-DD")
			}
			utc := time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
			patch.DueDate = &utc
		}
		if patch.Empty() {
			return fmt.Errorf("nothing to update: pass at least one field flag")
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		updated, err := app.taskService.Update(cmd.Context(), args[0], patch)
		if err != nil {
			return err
		}
		fmt.Println(successStyle.Render("Task updated: " + updated.Url))
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	updateCmd.Flags().StringVar(&updateSubject, "subject", "", "new subject")
	updateCmd.Flags().StringVar(&updateType, "type", "", "new type")
	updateCmd.Flags().StringVar(&updateStatus, "status", "", "new status")
	updateCmd.Flags().StringVar(&updatePriority, "priority", "", "new priority")
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "new description")
	updateCmd.Flags().StringVar(&updateDue, "due", "", "new due date (YYYY-MM-DD)")
}
