package domain

import (
	"time"
)

// TaskStatus represents the progress of a task.
type TaskStatus string

// Valid task statuses.
const (
	TaskStatusTodo       TaskStatus = "Todo"
	TaskStatusInProgress TaskStatus = "InProgress"
	TaskStatusDone       TaskStatus = "Done"
)

// IsValid reports whether the status is one of the known values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// TaskPriority represents the urgency of a task.
type TaskPriority string

// Valid task priorities.
const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

// IsValid reports whether the priority is one of the known values.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Field length limits for tasks.
const (
	MaxTitleLength       = 120
	MaxDescriptionLength = 500
)

// DueDateLayout is the wire and storage format for due dates.
// Due dates are calendar dates with no time-of-day component.
const DueDateLayout = "2006-01-02"

// Task represents a single tracked task. A task belongs to exactly one
// user, set at creation and never reassigned; all access is scoped by
// that owner.
type Task struct {
	ID          int64        `json:"id"`
	OwnerID     int64        `json:"-"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     time.Time    `json:"due_date"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// ParseDueDate parses a calendar date in YYYY-MM-DD form.
// Returns a ValidationError on any other input.
func ParseDueDate(value string) (time.Time, error) {
	due, err := time.Parse(DueDateLayout, value)
	if err != nil {
		return time.Time{}, NewValidationError("due_date", "must be a valid date in YYYY-MM-DD format")
	}
	return due.UTC(), nil
}

// Validate checks if the Task has valid data.
// Returns a ValidationError naming the offending field on failure.
func (t *Task) Validate() error {
	if t.OwnerID <= 0 {
		return NewValidationError("owner_id", "is required")
	}

	if t.Title == "" {
		return NewValidationError("title", "cannot be empty")
	}

	if len(t.Title) > MaxTitleLength {
		return NewValidationError("title", "must be at most 120 characters")
	}

	if len(t.Description) > MaxDescriptionLength {
		return NewValidationError("description", "must be at most 500 characters")
	}

	if !t.Status.IsValid() {
		return NewValidationError("status", "must be one of Todo, InProgress, Done")
	}

	if !t.Priority.IsValid() {
		return NewValidationError("priority", "must be one of Low, Medium, High")
	}

	if t.DueDate.IsZero() {
		return NewValidationError("due_date", "is required")
	}

	return nil
}
