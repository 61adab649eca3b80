package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/nexus-ia/notion-automation/internal/client/notion"
	"github.com/nexus-ia/notion-automation/internal/interpreter"
	"github.com/nexus-ia/notion-automation/internal/models"
	"github.com/nexus-ia/notion-automation/internal/service"
)

type ScheduleRequestBody struct {
	Order string `json:"order"`
}

type CreateTaskRequestBody struct {
	Title       string `json:"title"`
	Subject     string `json:"subject"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
}

type UpdateTaskRequestBody struct {
	Title       *string `json:"title"`
	Subject     *string `json:"subject"`
	Type        *string `json:"type"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
}

type TaskResponse struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Subject     string `json:"subject"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	Url         string `json:"url,omitempty"`
}

func toTaskResponse(task models.Task) TaskResponse {
	resp := TaskResponse{
		Id:          task.Id,
		Title:       task.Title,
		Subject:     task.Subject,
		Type:        task.Type,
		Status:      task.Status,
		Priority:    task.Priority,
		Description: task.Description,
		Url:         task.Url,
	}
	if task.DueDate != nil {
		resp.DueDate = task.DueDate.UTC().Format("2006-01-02")
	}
	return resp
}

func parseDate(s string) (*time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	utc := time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
	return &utc, nil
}

type TaskHandler struct {
	taskService *service.TaskService
	logger      *zap.Logger
}

func NewTaskHandler(taskService *service.TaskService, logger *zap.Logger) *TaskHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

func (h *TaskHandler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func (h *TaskHandler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeOperationError maps the typed errors to HTTP statuses. Auth and
// remote failures are our problem, not the caller's, hence 502.
func (h *TaskHandler) writeOperationError(w http.ResponseWriter, err error) {
	var validationErr *models.ValidationError
	var parseErr *interpreter.ParseError
	var authErr *notion.AuthError
	var remoteErr *notion.RemoteError

	switch {
	case errors.As(err, &validationErr), errors.As(err, &parseErr):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &authErr), errors.As(err, &remoteErr):
		h.logger.Error("notion request failed", zap.Error(err))
		h.writeError(w, http.StatusBadGateway, err.Error())
	default:
		h.logger.Error("operation failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *TaskHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}

	var reqBody ScheduleRequestBody
	if err := json.Unmarshal(body, &reqBody); err != nil {
		h.writeError(w, http.StatusBadRequest, "JSON error: "+err.Error())
		return
	}
	if reqBody.Order == "" {
		h.writeError(w, http.StatusBadRequest, "missing field 'order'")
		return
	}

	h.logger.Info("scheduling", zap.String("order", reqBody.Order))

	task, err := h.taskService.Schedule(r.Context(), reqBody.Order)
	if err != nil {
		h.writeOperationError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]any{
		"status": "success",
		"task":   toTaskResponse(*task),
	})
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}

	var reqBody CreateTaskRequestBody
	if err := json.Unmarshal(body, &reqBody); err != nil {
		h.writeError(w, http.StatusBadRequest, "JSON error: "+err.Error())
		return
	}

	task := models.Task{
		Title:       reqBody.Title,
		Subject:     reqBody.Subject,
		Type:        reqBody.Type,
		Status:      reqBody.Status,
		Priority:    reqBody.Priority,
		Description: reqBody.Description,
	}
	if reqBody.DueDate != "" {
		dueDate, err := parseDate(reqBody.DueDate)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "due_date must be YYYY-MM-DD")
			return
		}
		task.DueDate = dueDate
	}
	task.ApplyDefaults()

	created, err := h.taskService.Create(r.Context(), task)
	if err != nil {
		h.writeOperationError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]any{
		"task": toTaskResponse(*created),
	})
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	filter := models.TaskFilter{
		Subject: r.URL.Query().Get("subject"),
		Status:  r.URL.Query().Get("status"),
		Type:    r.URL.Query().Get("type"),
	}

	tasks, err := h.taskService.List(r.Context(), filter)
	if err != nil {
		h.writeOperationError(w, err)
		return
	}

	taskResponses := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		taskResponses = append(taskResponses, toTaskResponse(t))
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"tasks": taskResponses,
		"total": len(taskResponses),
	})
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	pageId := r.PathValue("id")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}

	var reqBody UpdateTaskRequestBody
	if err := json.Unmarshal(body, &reqBody); err != nil {
		h.writeError(w, http.StatusBadRequest, "JSON error: "+err.Error())
		return
	}

	patch := models.TaskPatch{
		Title:       reqBody.Title,
		Subject:     reqBody.Subject,
		Type:        reqBody.Type,
		Status:      reqBody.Status,
		Priority:    reqBody.Priority,
		Description: reqBody.Description,
	}
	if reqBody.DueDate != nil {
		dueDate, err := parseDate(*reqBody.DueDate)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "due_date must be YYYY-MM-DD")
			return
		}
		patch.DueDate = dueDate
	}

	updated, err := h.taskService.Update(r.Context(), pageId, patch)
	if err != nil {
		h.writeOperationError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"task": toTaskResponse(*updated),
	})
}

func (h *TaskHandler) ArchiveTask(w http.ResponseWriter, r *http.Request) {
	pageId := r.PathValue("id")

	if err := h.taskService.Archive(r.Context(), pageId); err != nil {
		h.writeOperationError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	events, err := h.taskService.History(limit)
	if err != nil {
		h.writeOperationError(w, err)
		return
	}

	type eventResponse struct {
		Id        string    `json:"id"`
		PageId    string    `json:"page_id"`
		Action    string    `json:"action"`
		Title     string    `json:"title,omitempty"`
		CreatedAt time.Time `json:"created_at"`
	}

	eventResponses := make([]eventResponse, 0, len(events))
	for _, e := range events {
		eventResponses = append(eventResponses, eventResponse{
			Id:        e.Id,
			PageId:    e.PageId,
			Action:    e.Action,
			Title:     e.Title,
			CreatedAt: e.CreatedAt,
		})
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"events": eventResponses,
	})
}

func (h *TaskHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
