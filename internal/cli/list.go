package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nexus-ia/notion-automation/internal/models"
)

var (
	listSubject string
	listStatus  string
	listType    string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tasks in the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		tasks, err := app.taskService.List(cmd.Context(), models.TaskFilter{
			Subject: listSubject,
			Status:  listStatus,
			Type:    listType,
		})
		if err != nil {
			return err
		}
		printTasks(tasks)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listSubject, "subject", "", "filter by subject")
	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by status")
	listCmd.Flags().StringVar(&listType, "type", "", "filter by type")
}

func printTasks(tasks []models.Task) {
	if len(tasks) == 0 {
		fmt.Println("No tasks matched the given filters.")
		return
	}

	divider := faintStyle.Render(strings.Repeat("─", 60))
	fmt.Println()
	fmt.Println(divider)
	for _, t := range tasks {
		due := ""
		if t.DueDate != nil {
			due = fmt.Sprintf("  |  due %s (%s)",
				t.DueDate.UTC().Format("2006-01-02"), humanize.Time(*t.DueDate))
		}
		fmt.Printf("  %s %s\n", tagStyle.Render("["+t.Type+"]"), t.Title)
		fmt.Printf("       %s  |  %s%s\n", t.Subject, t.Status, due)
		fmt.Printf("       %s\n", faintStyle.Render("id: "+t.Id))
		fmt.Println(divider)
	}
	fmt.Printf("\nTotal: %d task(s)\n", len(tasks))
}

func printTaskFields(task models.Task) {
	fmt.Printf("  title:    %s\n", task.Title)
	if task.Subject != "" {
		fmt.Printf("  subject:  %s\n", task.Subject)
	}
	if task.Type != "" {
		fmt.Printf("  type:     %s\n", task.Type)
	}
	if task.Status != "" {
		fmt.Printf("  status:   %s\n", task.Status)
	}
	if task.Priority != "" {
		fmt.Printf("  priority: %s\n", task.Priority)
	}
	if task.Description != "" {
		fmt.Printf("  notes:    %s\n", task.Description)
	}
	if task.DueDate != nil {
		fmt.Printf("  due:      %s\n", task.DueDate.UTC().Format("2006-01-02"))
	}
}
