package client

import (
	"context"

	"github.com/nexus-ia/notion-automation/internal/models"
)

type TaskClient interface {
	CreateTask(ctx context.Context, task models.Task) (*models.Task, error)
	ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	UpdateTask(ctx context.Context, pageId string, patch models.TaskPatch) (*models.Task, error)
	ArchiveTask(ctx context.Context, pageId string) error
}
