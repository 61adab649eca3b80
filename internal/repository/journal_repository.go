package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Actions recorded in the journal.
const (
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionArchive = "archive"
)

// TaskEvent is one entry in the local activity journal. The journal is an
// operation log, not a cache: listing tasks always goes to Notion.
type TaskEvent struct {
	Id        string
	PageId    string
	Action    string
	Title     string
	CreatedAt time.Time
}

type JournalRepository struct {
	db *sql.DB
}

func NewJournalRepository(db *sql.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

func (r *JournalRepository) Record(pageId, action, title string) (string, error) {
	id := uuid.New().String()
	query := `INSERT INTO task_events (id, page_id, action, title) VALUES (?, ?, ?, ?)`

	if _, err := r.db.Exec(query, id, pageId, action, title); err != nil {
		return "", fmt.Errorf("record task event: %w", err)
	}
	return id, nil
}

// Recent returns the newest events first.
func (r *JournalRepository) Recent(limit int) ([]TaskEvent, error) {
	query := `
	SELECT id, page_id, action, title, created_at FROM task_events
	ORDER BY created_at DESC, rowid DESC LIMIT ?
	`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("get task events: %w", err)
	}
	defer rows.Close()

	var events []TaskEvent
	for rows.Next() {
		var e TaskEvent
		err := rows.Scan(
			&e.Id,
			&e.PageId,
			&e.Action,
			&e.Title,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, rows.Err()
}
