package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nexus-ia/notion-automation/internal/client"
	"github.com/nexus-ia/notion-automation/internal/interpreter"
	"github.com/nexus-ia/notion-automation/internal/models"
	"github.com/nexus-ia/notion-automation/internal/repository"
)

type TaskService struct {
	notionClient client.TaskClient
	interpreter  interpreter.Interpreter
	journalRepo  *repository.JournalRepository
	logger       *zap.Logger
}

func NewTaskService(
	notionClient client.TaskClient,
	interp interpreter.Interpreter,
	journalRepo *repository.JournalRepository,
	logger *zap.Logger,
) *TaskService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{
		notionClient: notionClient,
		interpreter:  interp,
		journalRepo:  journalRepo,
		logger:       logger,
	}
}

// record is best effort: a journal failure never fails the Notion operation.
func (s *TaskService) record(pageId, action, title string) {
	if s.journalRepo == nil {
		return
	}
	if _, err := s.journalRepo.Record(pageId, action, title); err != nil {
		s.logger.Warn("journal write failed",
			zap.String("page_id", pageId),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

func (s *TaskService) Create(ctx context.Context, task models.Task) (*models.Task, error) {
	created, err := s.notionClient.CreateTask(ctx, task)
	if err != nil {
		return nil, err
	}
	s.record(created.Id, repository.ActionCreate, created.Title)
	return created, nil
}

func (s *TaskService) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	return s.notionClient.ListTasks(ctx, filter)
}

func (s *TaskService) Update(ctx context.Context, pageId string, patch models.TaskPatch) (*models.Task, error) {
	if patch.Empty() {
		return nil, &models.ValidationError{Field: "patch", Reason: "no fields to update"}
	}

	updated, err := s.notionClient.UpdateTask(ctx, pageId, patch)
	if err != nil {
		return nil, err
	}
	s.record(updated.Id, repository.ActionUpdate, updated.Title)
	return updated, nil
}

func (s *TaskService) Archive(ctx context.Context, pageId string) error {
	if err := s.notionClient.ArchiveTask(ctx, pageId); err != nil {
		return err
	}
	s.record(pageId, repository.ActionArchive, "")
	return nil
}

// Schedule interprets the sentence and creates the resulting task.
func (s *TaskService) Schedule(ctx context.Context, text string) (*models.Task, error) {
	if s.interpreter == nil {
		return nil, fmt.Errorf("no interpreter configured")
	}

	task, err := s.interpreter.Interpret(ctx, text)
	if err != nil {
		return nil, err
	}
	task.ApplyDefaults()

	return s.Create(ctx, task)
}

// Interpret exposes the interpreter without creating anything, so callers
// can preview or complete the parsed fields first.
func (s *TaskService) Interpret(ctx context.Context, text string) (models.Task, error) {
	if s.interpreter == nil {
		return models.Task{}, fmt.Errorf("no interpreter configured")
	}
	return s.interpreter.Interpret(ctx, text)
}

func (s *TaskService) History(limit int) ([]repository.TaskEvent, error) {
	if s.journalRepo == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	return s.journalRepo.Recent(limit)
}
