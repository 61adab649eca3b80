package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/nexus-ia/notion-automation/internal/api/handlers"
	"github.com/nexus-ia/notion-automation/internal/service"
)

func SetupRouter(taskService *service.TaskService, logger *zap.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	taskHandler := handlers.NewTaskHandler(taskService, logger)

	mux.HandleFunc("POST /schedule", taskHandler.Schedule)
	mux.HandleFunc("POST /tasks", taskHandler.CreateTask)
	mux.HandleFunc("GET /tasks", taskHandler.ListTasks)
	mux.HandleFunc("PATCH /tasks/{id}", taskHandler.UpdateTask)
	mux.HandleFunc("DELETE /tasks/{id}", taskHandler.ArchiveTask)
	mux.HandleFunc("GET /tasks/events", taskHandler.ListEvents)
	mux.HandleFunc("GET /health", taskHandler.Health)

	return mux
}
