package models

import (
	"fmt"
	"strings"
)

// ValidationError reports a task field rejected before any request is made.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

func newEnumError(field, value string, options []string) *ValidationError {
	return &ValidationError{
		Field:  field,
		Value:  value,
		Reason: fmt.Sprintf("%q is not one of: %s", value, strings.Join(options, ", ")),
	}
}
