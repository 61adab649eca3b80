package models

import "time"

// Select options of the Notion database. The sets mirror the database schema,
// so adding a value here without adding it in Notion makes creates fail
// remotely even though local validation passes.
var (
	Subjects = []string{
		"Software Engineering",
		"Advanced Databases",
		"Networks and Communications",
		"Software Architecture",
		"Computer Security",
		"Capstone Project",
		"Other",
	}

	Types = []string{
		"Homework",
		"Exam",
		"Project",
		"Note",
		"Resource",
		"Activity",
	}

	Statuses = []string{
		"To do",
		"In progress",
		"Completed",
		"Cancelled",
	}

	Priorities = []string{
		"High",
		"Medium",
		"Low",
	}
)

const (
	DefaultSubject  = "Other"
	DefaultType     = "Homework"
	DefaultStatus   = "To do"
	DefaultPriority = "Medium"
)

type Task struct {
	Id          string     `json:"id,omitempty"`
	Title       string     `json:"title"`
	Subject     string     `json:"subject"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`

	// Assigned by Notion, never sent on create.
	Url      string `json:"url,omitempty"`
	Archived bool   `json:"archived,omitempty"`
}

// TaskFilter narrows ListTasks. Empty fields are ignored.
type TaskFilter struct {
	Subject string `json:"subject,omitempty"`
	Status  string `json:"status,omitempty"`
	Type    string `json:"type,omitempty"`
}

// TaskPatch carries a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string    `json:"title,omitempty"`
	Subject     *string    `json:"subject,omitempty"`
	Type        *string    `json:"type,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

func contains(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}

// ApplyDefaults fills the select fields that were left empty.
func (t *Task) ApplyDefaults() {
	if t.Subject == "" {
		t.Subject = DefaultSubject
	}
	if t.Type == "" {
		t.Type = DefaultType
	}
	if t.Status == "" {
		t.Status = DefaultStatus
	}
	if t.Priority == "" {
		t.Priority = DefaultPriority
	}
}

// Validate checks the title and every select field against its option set.
func (t *Task) Validate() error {
	if t.Title == "" {
		return &ValidationError{Field: "title", Reason: "title is required"}
	}
	if !contains(Subjects, t.Subject) {
		return newEnumError("subject", t.Subject, Subjects)
	}
	if !contains(Types, t.Type) {
		return newEnumError("type", t.Type, Types)
	}
	if !contains(Statuses, t.Status) {
		return newEnumError("status", t.Status, Statuses)
	}
	if !contains(Priorities, t.Priority) {
		return newEnumError("priority", t.Priority, Priorities)
	}
	return nil
}

// Validate rejects patches whose select values are outside their option sets.
func (p *TaskPatch) Validate() error {
	if p.Title != nil && *p.Title == "" {
		return &ValidationError{Field: "title", Reason: "title cannot be empty"}
	}
	if p.Subject != nil && !contains(Subjects, *p.Subject) {
		return newEnumError("subject", *p.Subject, Subjects)
	}
	if p.Type != nil && !contains(Types, *p.Type) {
		return newEnumError("type", *p.Type, Types)
	}
	if p.Status != nil && !contains(Statuses, *p.Status) {
		return newEnumError("status", *p.Status, Statuses)
	}
	if p.Priority != nil && !contains(Priorities, *p.Priority) {
		return newEnumError("priority", *p.Priority, Priorities)
	}
	return nil
}

// Empty reports whether the patch carries no fields at all.
func (p *TaskPatch) Empty() bool {
	return p.Title == nil && p.Subject == nil && p.Type == nil &&
		p.Status == nil && p.Priority == nil && p.Description == nil &&
		p.DueDate == nil
}
