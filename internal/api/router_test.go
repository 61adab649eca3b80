package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexus-ia/notion-automation/internal/client/notion"
	"github.com/nexus-ia/notion-automation/internal/interpreter"
	"github.com/nexus-ia/notion-automation/internal/models"
	"github.com/nexus-ia/notion-automation/internal/repository"
	"github.com/nexus-ia/notion-automation/internal/service"
)

// fakeClient validates like the real client and plays back canned results.
type fakeClient struct {
	err      error
	tasks    []models.Task
	archived []string
}

func (f *fakeClient) CreateTask(_ context.Context, task models.Task) (*models.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	created := task
	created.Id = "page-123"
	created.Url = "https://www.notion.so/page-123"
	return &created, nil
}

func (f *fakeClient) ListTasks(_ context.Context, _ models.TaskFilter) ([]models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tasks, nil
}

func (f *fakeClient) UpdateTask(_ context.Context, pageId string, patch models.TaskPatch) (*models.Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	task := models.Task{Id: pageId, Title: "Updated", Subject: "Other", Type: "Homework", Status: "To do", Priority: "Medium"}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	return &task, nil
}

func (f *fakeClient) ArchiveTask(_ context.Context, pageId string) error {
	if f.err != nil {
		return f.err
	}
	f.archived = append(f.archived, pageId)
	return nil
}

func newTestServer(t *testing.T, client *fakeClient) *httptest.Server {
	t.Helper()

	db, err := repository.InitDB(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := service.NewTaskService(client, interpreter.NewHeuristicInterpreter(), repository.NewJournalRepository(db), nil)
	srv := httptest.NewServer(SetupRouter(svc, nil))
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, srv *httptest.Server, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()

	var reqBody *strings.Reader
	if body == "" {
		reqBody = strings.NewReader("")
	} else {
		reqBody = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, srv.URL+path, reqBody)
	require.NoError(t, err)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	}
	return resp, decoded
}

func TestScheduleEndpoint(t *testing.T) {
	srv := newTestServer(t, &fakeClient{})

	resp, body := doRequest(t, srv, http.MethodPost, "/schedule", `{"order":"networks exam tomorrow"}`)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "success", body["status"])

	task := body["task"].(map[string]any)
	assert.Equal(t, "page-123", task["id"])
	assert.Equal(t, "Networks and Communications", task["subject"])
	assert.Equal(t, "Exam", task["type"])
	assert.NotEmpty(t, task["due_date"])
}

func TestScheduleMissingOrder(t *testing.T) {
	srv := newTestServer(t, &fakeClient{})

	resp, body := doRequest(t, srv, http.MethodPost, "/schedule", `{}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "order")
}

func TestCreateTaskEndpoint(t *testing.T) {
	srv := newTestServer(t, &fakeClient{})

	resp, body := doRequest(t, srv, http.MethodPost, "/tasks",
		`{"title":"Study graphs","subject":"Advanced Databases","due_date":"2026-09-15"}`)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	task := body["task"].(map[string]any)
	assert.Equal(t, "Study graphs", task["title"])
	assert.Equal(t, "Advanced Databases", task["subject"])
	assert.Equal(t, "Homework", task["type"])
	assert.Equal(t, "2026-09-15", task["due_date"])
}

func TestCreateTaskInvalidEnum(t *testing.T) {
	srv := newTestServer(t, &fakeClient{})

	resp, body := doRequest(t, srv, http.MethodPost, "/tasks",
		`{"title":"Odd","subject":"Chemistry"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "subject")
}

func TestCreateTaskBadDueDate(t *testing.T) {
	srv := newTestServer(t, &fakeClient{})

	resp, body := doRequest(t, srv, http.MethodPost, "/tasks",
		`{"title":"Bad","due_date":"soon"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "due_date")
}

func TestListTasksEndpoint(t *testing.T) {
	due := time.Date(2026, time.September, 15, 12, 0, 0, 0, time.UTC)
	client := &fakeClient{tasks: []models.Task{
		{Id: "p1", Title: "One", Subject: "Other", Type: "Homework", Status: "To do", Priority: "Medium", DueDate: &due},
		{Id: "p2", Title: "Two", Subject: "Other", Type: "Note", Status: "Completed", Priority: "Low"},
	}}
	srv := newTestServer(t, client)

	resp, body := doRequest(t, srv, http.MethodGet, "/tasks?status=To+do", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["total"])

	tasks := body["tasks"].([]any)
	first := tasks[0].(map[string]any)
	assert.Equal(t, "2026-09-15", first["due_date"])
}

func TestUpdateTaskEndpoint(t *testing.T) {
	srv := newTestServer(t, &fakeClient{})

	resp, body := doRequest(t, srv, http.MethodPatch, "/tasks/page-123", `{"status":"Completed"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	task := body["task"].(map[string]any)
	assert.Equal(t, "page-123", task["id"])
	assert.Equal(t, "Completed", task["status"])
}

func TestUpdateTaskEmptyPatch(t *testing.T) {
	srv := newTestServer(t, &fakeClient{})

	resp, _ := doRequest(t, srv, http.MethodPatch, "/tasks/page-123", `{}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestArchiveTaskEndpoint(t *testing.T) {
	client := &fakeClient{}
	srv := newTestServer(t, client)

	resp, _ := doRequest(t, srv, http.MethodDelete, "/tasks/page-123", "")

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, []string{"page-123"}, client.archived)
}

func TestNotionFailureMapsToBadGateway(t *testing.T) {
	client := &fakeClient{err: &notion.AuthError{Status: http.StatusUnauthorized, Code: "unauthorized", Message: "API token is invalid."}}
	srv := newTestServer(t, client)

	resp, _ := doRequest(t, srv, http.MethodGet, "/tasks", "")

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestEventsEndpoint(t *testing.T) {
	srv := newTestServer(t, &fakeClient{})

	resp, _ := doRequest(t, srv, http.MethodPost, "/schedule", `{"order":"security homework tomorrow"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doRequest(t, srv, http.MethodGet, "/tasks/events", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	events := body["events"].([]any)
	require.Len(t, events, 1)
	assert.Equal(t, "create", events[0].(map[string]any)["action"])
}

func TestEventsEndpointRejectsBadLimit(t *testing.T) {
	srv := newTestServer(t, &fakeClient{})

	resp, _ := doRequest(t, srv, http.MethodGet, "/tasks/events?limit=zero", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, &fakeClient{})

	resp, body := doRequest(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}
