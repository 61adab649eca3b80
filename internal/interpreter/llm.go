package interpreter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/nexus-ia/notion-automation/internal/models"
)

const llmSystemPrompt = `You are an assistant that organizes university tasks in Notion.
The user will describe an entry for a task database. Respond ONLY with a JSON object with these keys:
  title (string, required)
  subject (one of: %s)
  type (one of: %s)
  status (one of: %s)
  priority (one of: %s)
  description (string, optional)
  due_date (YYYY-MM-DD, optional)
Today is %s. If you cannot determine a value, omit the key and a reasonable default will be used.`

// LLMInterpreter sends the text to a chat-completion endpoint with a fixed
// instruction describing the schema, and decodes the returned JSON.
type LLMInterpreter struct {
	model llms.Model
	now   func() time.Time
}

type LLMConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

func NewLLMInterpreter(cfg LLMConfig) (*LLMInterpreter, error) {
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("init llm interpreter: %w", err)
	}
	return &LLMInterpreter{model: llm, now: time.Now}, nil
}

// taskDraft is the JSON shape the model is instructed to return.
type taskDraft struct {
	Title       string `json:"title"`
	Subject     string `json:"subject"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
}

func (i *LLMInterpreter) Interpret(ctx context.Context, text string) (models.Task, error) {
	systemPrompt := fmt.Sprintf(llmSystemPrompt,
		strings.Join(models.Subjects, ", "),
		strings.Join(models.Types, ", "),
		strings.Join(models.Statuses, ", "),
		strings.Join(models.Priorities, ", "),
		i.now().Format("2006-01-02"),
	)

	resp, err := i.model.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
			llms.TextParts(llms.ChatMessageTypeHuman, text),
		},
		llms.WithJSONMode(),
	)
	if err != nil {
		return models.Task{}, fmt.Errorf("llm completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return models.Task{}, &ParseError{Reason: "model returned no choices"}
	}

	return draftToTask(resp.Choices[0].Content)
}

func draftToTask(content string) (models.Task, error) {
	// Some models wrap JSON replies in a markdown fence even in JSON mode.
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var draft taskDraft
	if err := json.Unmarshal([]byte(content), &draft); err != nil {
		return models.Task{}, &ParseError{Reason: "model reply is not valid JSON", Err: err}
	}
	if strings.TrimSpace(draft.Title) == "" {
		return models.Task{}, &ParseError{Reason: "model reply omits the title"}
	}

	task := models.Task{
		Title:       strings.TrimSpace(draft.Title),
		Subject:     orDefault(draft.Subject, models.Subjects, models.DefaultSubject),
		Type:        orDefault(draft.Type, models.Types, models.DefaultType),
		Status:      orDefault(draft.Status, models.Statuses, models.DefaultStatus),
		Priority:    orDefault(draft.Priority, models.Priorities, models.DefaultPriority),
		Description: strings.TrimSpace(draft.Description),
	}

	if draft.DueDate != "" {
		dueDate, err := time.Parse("2006-01-02", draft.DueDate)
		if err != nil {
			return models.Task{}, &ParseError{Reason: "model reply has a malformed due_date", Err: err}
		}
		utc := time.Date(dueDate.Year(), dueDate.Month(), dueDate.Day(), 12, 0, 0, 0, time.UTC)
		task.DueDate = &utc
	}

	return task, nil
}
