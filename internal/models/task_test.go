package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	task := Task{Title: "Read the networking chapter"}
	task.ApplyDefaults()

	assert.Equal(t, "Other", task.Subject)
	assert.Equal(t, "Homework", task.Type)
	assert.Equal(t, "To do", task.Status)
	assert.Equal(t, "Medium", task.Priority)
}

func TestApplyDefaultsKeepsSetFields(t *testing.T) {
	task := Task{Title: "Exam", Subject: "Computer Security", Priority: "High"}
	task.ApplyDefaults()

	assert.Equal(t, "Computer Security", task.Subject)
	assert.Equal(t, "High", task.Priority)
	assert.Equal(t, "To do", task.Status)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		task      Task
		wantField string
	}{
		{
			name: "valid task",
			task: Task{Title: "t", Subject: "Advanced Databases", Type: "Exam", Status: "To do", Priority: "High"},
		},
		{
			name:      "missing title",
			task:      Task{Subject: "Other", Type: "Homework", Status: "To do", Priority: "Medium"},
			wantField: "title",
		},
		{
			name:      "unknown subject",
			task:      Task{Title: "t", Subject: "Chemistry", Type: "Homework", Status: "To do", Priority: "Medium"},
			wantField: "subject",
		},
		{
			name:      "unknown type",
			task:      Task{Title: "t", Subject: "Other", Type: "Chore", Status: "To do", Priority: "Medium"},
			wantField: "type",
		},
		{
			name:      "unknown status",
			task:      Task{Title: "t", Subject: "Other", Type: "Homework", Status: "Done", Priority: "Medium"},
			wantField: "status",
		},
		{
			name:      "unknown priority",
			task:      Task{Title: "t", Subject: "Other", Type: "Homework", Status: "To do", Priority: "Urgent"},
			wantField: "priority",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantField, validationErr.Field)
		})
	}
}

func TestPatchValidate(t *testing.T) {
	completed := "Completed"
	assert.NoError(t, (&TaskPatch{Status: &completed}).Validate())

	bogus := "Paused"
	err := (&TaskPatch{Status: &bogus}).Validate()
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "status", validationErr.Field)

	empty := ""
	err = (&TaskPatch{Title: &empty}).Validate()
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "title", validationErr.Field)
}

func TestPatchEmpty(t *testing.T) {
	assert.True(t, (&TaskPatch{}).Empty())

	status := "To do"
	assert.False(t, (&TaskPatch{Status: &status}).Empty())
}
