package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nexus-ia/notion-automation/internal/interpreter"
)

var addCmd = &cobra.Command{
	Use:   "add [sentence...]",
	Short: "Add a task, interpreting a free-form sentence when given",
	Long: `Add a task to the Notion database. With arguments, the whole
sentence is interpreted into the task fields (subject, type, priority,
due date); without arguments the fields are prompted one by one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx := cmd.Context()
		p := newPrompter()

		if len(args) == 0 {
			task := app.promptTask(p)
			if task.Title == "" {
				return fmt.Errorf("the title is required")
			}
			task.ApplyDefaults()

			created, err := app.taskService.Create(ctx, task)
			if err != nil {
				return err
			}
			fmt.Println(successStyle.Render("Task created: " + created.Url))
			return nil
		}

		sentence := strings.Join(args, " ")
		fmt.Println("Interpreting: " + faintStyle.Render(sentence))

		task, err := app.taskService.Interpret(ctx, sentence)
		var parseErr *interpreter.ParseError
		if errors.As(err, &parseErr) {
			// The sentence could not be mapped; fall back to prompts.
			fmt.Println(warnStyle.Render(err.Error()))
			task = app.promptTask(p)
			if task.Title == "" {
				return fmt.Errorf("the title is required")
			}
		} else if err != nil {
			return err
		} else {
			fmt.Println("\nDetected fields:")
			printTaskFields(task)
		}
		task.ApplyDefaults()

		created, err := app.taskService.Create(ctx, task)
		if err != nil {
			return err
		}
		fmt.Println(successStyle.Render("Task created: " + created.Url))
		return nil
	},
}
