package api

import (
	"time"

	"github.com/jmallory/taskdeck-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse defines the successful response for the login endpoint.
type TokenResponse struct {
	// Token is the JWT used for API authorization
	Token string `json:"token"`
}

// MessageResponse wraps a human-readable outcome message.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateTaskRequest defines the payload for task creation.
// Status and priority default server-side when omitted; due_date is
// required and must be formatted YYYY-MM-DD.
type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"    validate:"required"`
}

// UpdateTaskRequest defines the payload for task updates. All fields are
// optional; absent fields keep their current values.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
}

// TaskResponse is the API representation of a task. The due date is
// rendered as a bare calendar date; timestamps are RFC 3339 UTC.
type TaskResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// TaskMessageResponse pairs an outcome message with the affected task.
type TaskMessageResponse struct {
	Message string       `json:"message"`
	Task    TaskResponse `json:"task"`
}

// NewTaskResponse converts a domain task into its API representation.
func NewTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		DueDate:     task.DueDate.Format(domain.DueDateLayout),
		CreatedAt:   task.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// NewTaskListResponse converts a slice of domain tasks, preserving order.
// An empty input yields an empty (non-nil) slice so the JSON is [] not null.
func NewTaskListResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, NewTaskResponse(task))
	}
	return out
}
