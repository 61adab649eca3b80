package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nexus-ia/notion-automation/internal/interpreter"
	"github.com/nexus-ia/notion-automation/internal/models"
)

type prompter struct {
	in *bufio.Reader
}

func newPrompter() *prompter {
	return &prompter{in: bufio.NewReader(os.Stdin)}
}

func (p *prompter) line(label string) string {
	fmt.Print(label)
	text, _ := p.in.ReadString('\n')
	return strings.TrimSpace(text)
}

// choose shows a numbered picker and insists until a valid number is given.
func (p *prompter) choose(label string, options []string) string {
	fmt.Println()
	fmt.Println(label + ":")
	for i, option := range options {
		fmt.Printf("  %d. %s\n", i+1, option)
	}
	for {
		input := p.line("  Pick a number: ")
		n, err := strconv.Atoi(input)
		if err == nil && n >= 1 && n <= len(options) {
			return options[n-1]
		}
		fmt.Println(warnStyle.Render("  Invalid option, try again."))
	}
}

func (p *prompter) confirm(label string) bool {
	answer := strings.ToLower(p.line(label + " (y/N): "))
	return answer == "y" || answer == "yes"
}

// dueDate keeps asking until the input is empty or a valid YYYY-MM-DD date.
func (p *prompter) dueDate(label string) *time.Time {
	for {
		input := p.line(label)
		if input == "" {
			return nil
		}
		t, err := time.Parse("2006-01-02", input)
		if err == nil {
			utc := time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
			return &utc
		}
		fmt.Println(warnStyle.Render("  Use the YYYY-MM-DD format."))
	}
}

func (a *app) runMenu(ctx context.Context) error {
	p := newPrompter()

	fmt.Println(headerStyle.Render(strings.Repeat("=", 52)))
	fmt.Println(headerStyle.Render("  Nexus - Notion task automation"))
	fmt.Println(headerStyle.Render(strings.Repeat("=", 52)))

	for {
		fmt.Println("\nWhat do you want to do?")
		fmt.Println("  1. Add a task")
		fmt.Println("  2. List tasks")
		fmt.Println("  3. Update a status")
		fmt.Println("  4. Archive a task")
		fmt.Println("  5. Recent activity")
		fmt.Println("  6. Quit")

		var err error
		switch p.line("\nPick an option: ") {
		case "1":
			err = a.menuAdd(ctx, p)
		case "2":
			err = a.menuList(ctx, p)
		case "3":
			err = a.menuUpdate(ctx, p)
		case "4":
			err = a.menuArchive(ctx, p)
		case "5":
			err = a.printHistory(10)
		case "6":
			fmt.Println("Bye!")
			return nil
		default:
			fmt.Println(warnStyle.Render("Invalid option."))
			continue
		}

		// Errors end the current operation only, never the menu.
		if err != nil {
			fmt.Println(errorStyle.Render("Error: " + err.Error()))
		}
	}
}

func (a *app) menuAdd(ctx context.Context, p *prompter) error {
	text := p.line("\nDescribe the task (or press Enter for manual mode): ")

	var task models.Task
	if text != "" {
		parsed, err := a.taskService.Interpret(ctx, text)

		var parseErr *interpreter.ParseError
		if errors.As(err, &parseErr) {
			fmt.Println(warnStyle.Render("Could not interpret that, switching to manual mode: " + err.Error()))
		} else if err != nil {
			return err
		} else {
			task = parsed
			fmt.Println("\nDetected fields:")
			printTaskFields(task)
			if !p.confirm("Create it?") {
				fmt.Println("Cancelled.")
				return nil
			}
		}
	}

	if task.Title == "" {
		task = a.promptTask(p)
		if task.Title == "" {
			fmt.Println(warnStyle.Render("The title is required."))
			return nil
		}
	}
	task.ApplyDefaults()

	fmt.Println("\nCreating the task in Notion…")
	created, err := a.taskService.Create(ctx, task)
	if err != nil {
		return err
	}
	fmt.Println(successStyle.Render("Task created: " + created.Url))
	return nil
}

func (a *app) promptTask(p *prompter) models.Task {
	task := models.Task{Title: p.line("\nTask title: ")}
	if task.Title == "" {
		return task
	}

	task.Subject = p.choose("Subject", models.Subjects)
	task.Type = p.choose("Type", models.Types)
	task.Status = p.choose("Status", models.Statuses)
	task.Priority = p.choose("Priority", models.Priorities)
	task.Description = p.line("\nDescription (optional, Enter to skip): ")
	task.DueDate = p.dueDate("Due date (YYYY-MM-DD, Enter to skip): ")
	return task
}

// menuList mirrors the add pickers but accepts free text: a filter that is
// not an exact option is silently dropped.
func (a *app) menuList(ctx context.Context, p *prompter) error {
	fmt.Println("\nOptional filters (Enter to skip):")

	filter := models.TaskFilter{}
	if v := p.line("Subject: "); validOption(v, models.Subjects) {
		filter.Subject = v
	}
	if v := p.line("Status: "); validOption(v, models.Statuses) {
		filter.Status = v
	}
	if v := p.line("Type: "); validOption(v, models.Types) {
		filter.Type = v
	}

	tasks, err := a.taskService.List(ctx, filter)
	if err != nil {
		return err
	}
	printTasks(tasks)
	return nil
}

func validOption(value string, options []string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}

func (a *app) menuUpdate(ctx context.Context, p *prompter) error {
	pageId := p.line("\nPage id to update: ")
	if pageId == "" {
		fmt.Println(warnStyle.Render("A page id is required."))
		return nil
	}

	status := p.choose("New status", models.Statuses)
	updated, err := a.taskService.Update(ctx, pageId, models.TaskPatch{Status: &status})
	if err != nil {
		return err
	}
	fmt.Println(successStyle.Render("Status updated: " + updated.Url))
	return nil
}

func (a *app) menuArchive(ctx context.Context, p *prompter) error {
	pageId := p.line("\nPage id to archive: ")
	if pageId == "" {
		fmt.Println(warnStyle.Render("A page id is required."))
		return nil
	}

	if !p.confirm(fmt.Sprintf("Archive '%s'?", pageId)) {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := a.taskService.Archive(ctx, pageId); err != nil {
		return err
	}
	fmt.Println(successStyle.Render("Task archived."))
	return nil
}
