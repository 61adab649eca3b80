package interpreter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/nexus-ia/notion-automation/internal/models"
)

// fakeModel returns a canned reply and records the messages it was given.
type fakeModel struct {
	reply    string
	err      error
	messages []llms.MessageContent
}

func (f *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.reply}},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	resp, err := f.GenerateContent(ctx, []llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt)}, options...)
	if err != nil {
		return "", err
	}
	return resp.Choices[0].Content, nil
}

func TestLLMInterpret(t *testing.T) {
	model := &fakeModel{reply: `{"title":"Study graphs","subject":"Advanced Databases","type":"Exam","priority":"High","due_date":"2026-09-15"}`}
	i := &LLMInterpreter{model: model, now: func() time.Time { return testNow }}

	task, err := i.Interpret(context.Background(), "graphs exam, urgent")
	require.NoError(t, err)

	assert.Equal(t, "Study graphs", task.Title)
	assert.Equal(t, "Advanced Databases", task.Subject)
	assert.Equal(t, "Exam", task.Type)
	assert.Equal(t, "To do", task.Status)
	assert.Equal(t, "High", task.Priority)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, "2026-09-15", task.DueDate.Format("2006-01-02"))

	// System instruction first, user text second.
	require.Len(t, model.messages, 2)
	assert.Equal(t, llms.ChatMessageTypeSystem, model.messages[0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, model.messages[1].Role)
}

func TestLLMInterpretModelFailure(t *testing.T) {
	model := &fakeModel{err: errors.New("rate limited")}
	i := &LLMInterpreter{model: model, now: func() time.Time { return testNow }}

	_, err := i.Interpret(context.Background(), "anything")
	require.ErrorContains(t, err, "llm completion")
}

func TestDraftToTask(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, task models.Task)
		wantErr bool
	}{
		{
			name:    "minimal reply gets defaults",
			content: `{"title":"Read chapter 4"}`,
			check: func(t *testing.T, task models.Task) {
				assert.Equal(t, "Read chapter 4", task.Title)
				assert.Equal(t, "Other", task.Subject)
				assert.Equal(t, "Homework", task.Type)
				assert.Equal(t, "To do", task.Status)
				assert.Equal(t, "Medium", task.Priority)
				assert.Nil(t, task.DueDate)
			},
		},
		{
			name:    "fenced reply",
			content: "```json\n{\"title\":\"Fenced\",\"type\":\"Note\"}\n```",
			check: func(t *testing.T, task models.Task) {
				assert.Equal(t, "Fenced", task.Title)
				assert.Equal(t, "Note", task.Type)
			},
		},
		{
			name:    "unknown enum values clamp to defaults",
			content: `{"title":"Odd","subject":"Chemistry","type":"Song","priority":"Extreme"}`,
			check: func(t *testing.T, task models.Task) {
				assert.Equal(t, "Other", task.Subject)
				assert.Equal(t, "Homework", task.Type)
				assert.Equal(t, "Medium", task.Priority)
			},
		},
		{
			name:    "missing title",
			content: `{"subject":"Computer Security"}`,
			wantErr: true,
		},
		{
			name:    "not json",
			content: "I could not produce a task, sorry.",
			wantErr: true,
		},
		{
			name:    "malformed due date",
			content: `{"title":"Bad date","due_date":"soon"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := draftToTask(tt.content)
			if tt.wantErr {
				var parseErr *ParseError
				require.ErrorAs(t, err, &parseErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, task)
		})
	}
}
