// Package interpreter maps free-form text into the task schema, either
// through an LLM completion call or an offline heuristic parser.
package interpreter

import (
	"context"
	"fmt"

	"github.com/nexus-ia/notion-automation/internal/models"
)

type Interpreter interface {
	Interpret(ctx context.Context, text string) (models.Task, error)
}

// ParseError means the text could not be mapped into a task. Callers are
// expected to fall back to the interactive flow.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse task: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("parse task: %s", e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// orDefault clamps a value produced by an interpreter to its option set, the
// same way the interactive flow treats an unanswered prompt.
func orDefault(value string, options []string, fallback string) string {
	for _, o := range options {
		if o == value {
			return value
		}
	}
	return fallback
}
