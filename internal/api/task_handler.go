package api

import (
	"errors"
	"net/http"

	"github.com/jmallory/taskdeck-api/internal/api/shared"
	"github.com/jmallory/taskdeck-api/internal/domain"
	"github.com/jmallory/taskdeck-api/internal/platform/logger"
	"github.com/jmallory/taskdeck-api/internal/service"
	"github.com/jmallory/taskdeck-api/internal/store"
)

// TaskHandler handles task-related API requests. Every operation is scoped
// to the authenticated user; there is no way to address another user's
// tasks through this handler.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask handles the POST /api/tasks endpoint.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), nil)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	task, err := h.taskService.Create(r.Context(), userID, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			HandleAPIError(w, r, err, "")
			return
		}
		log.Error("failed to create task", "error", err, "user_id", userID)
		shared.RespondWithErrorAndLog(
			w, r, http.StatusInternalServerError, "Failed to create task", err)
		return
	}

	log.Info("task created", "task_id", task.ID, "user_id", userID)
	shared.RespondWithJSON(w, r, http.StatusCreated, TaskMessageResponse{
		Message: "Task created successfully!",
		Task:    NewTaskResponse(task),
	})
}

// ListTasks handles the GET /api/tasks endpoint. The response contains only
// the authenticated user's tasks, in ascending ID order, and is an empty
// array when there are none.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), nil)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	tasks, err := h.taskService.List(r.Context(), userID)
	if err != nil {
		log.Error("failed to list tasks", "error", err, "user_id", userID)
		shared.RespondWithErrorAndLog(
			w, r, http.StatusInternalServerError, "Failed to list tasks", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskListResponse(tasks))
}

// UpdateTask handles the PUT /api/tasks/{id} endpoint. Updating a task that
// does not exist and updating a task owned by another user both return the
// same 404 response.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), nil)

	userID, taskID, ok := handleUserIDAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	task, err := h.taskService.Update(r.Context(), userID, taskID, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrTaskNotFound):
			shared.RespondWithError(w, r, http.StatusNotFound, "Task not found!")
		case errors.Is(err, domain.ErrValidation):
			HandleAPIError(w, r, err, "")
		default:
			log.Error("failed to update task",
				"error", err, "task_id", taskID, "user_id", userID)
			shared.RespondWithErrorAndLog(
				w, r, http.StatusInternalServerError, "Failed to update task", err)
		}
		return
	}

	log.Info("task updated", "task_id", task.ID, "user_id", userID)
	shared.RespondWithJSON(w, r, http.StatusOK, TaskMessageResponse{
		Message: "Task updated successfully!",
		Task:    NewTaskResponse(task),
	})
}
