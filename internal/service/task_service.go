package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmallory/taskdeck-api/internal/domain"
	"github.com/jmallory/taskdeck-api/internal/store"
)

// CreateTaskInput carries the fields for creating a task. Status and
// Priority default to Todo and Low when empty; DueDate is required and
// must be a calendar date in YYYY-MM-DD form.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     string
}

// UpdateTaskInput carries a partial update. Nil fields are left untouched;
// only supplied fields are validated and overwritten. The due date is
// re-parsed only when supplied, so an omitted date survives the update
// byte-for-byte.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *string
}

// TaskService provides task operations under an authenticated identity.
// Every method takes the caller's user ID and never exposes or mutates
// another owner's tasks.
type TaskService interface {
	// Create validates the input and persists a new task for the owner.
	// Fails with a domain ValidationError on any violation; nothing is
	// persisted in that case.
	Create(ctx context.Context, ownerID int64, input CreateTaskInput) (*domain.Task, error)

	// List returns all of the owner's tasks, and only theirs.
	List(ctx context.Context, ownerID int64) ([]*domain.Task, error)

	// Get returns a single task scoped to the owner.
	// Fails with store.ErrTaskNotFound when the task does not exist for
	// that owner, including when it exists but belongs to someone else.
	Get(ctx context.Context, ownerID, taskID int64) (*domain.Task, error)

	// Update applies a partial update to the owner's task. UpdatedAt is
	// always advanced on success, even when no field content changed.
	// Fails with store.ErrTaskNotFound or a domain ValidationError.
	Update(ctx context.Context, ownerID, taskID int64, input UpdateTaskInput) (*domain.Task, error)
}

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	taskStore store.TaskStore
	db        *sql.DB
	logger    *slog.Logger
	timeFunc  func() time.Time // Injectable for testing
}

// Ensure TaskServiceImpl implements TaskService interface
var _ TaskService = (*TaskServiceImpl)(nil)

// NewTaskService creates a new TaskService. The db handle is used to run
// the update read-modify-write in a transaction; it may be nil in tests,
// in which case updates run directly against the store.
func NewTaskService(taskStore store.TaskStore, db *sql.DB, logger *slog.Logger) *TaskServiceImpl {
	return &TaskServiceImpl{
		taskStore: taskStore,
		db:        db,
		logger:    logger.With("component", "task_service"),
		timeFunc:  time.Now,
	}
}

// Create validates the input and persists a new task for the owner.
func (s *TaskServiceImpl) Create(ctx context.Context, ownerID int64, input CreateTaskInput) (*domain.Task, error) {
	status := domain.TaskStatus(input.Status)
	if input.Status == "" {
		status = domain.TaskStatusTodo
	}

	priority := domain.TaskPriority(input.Priority)
	if input.Priority == "" {
		priority = domain.TaskPriorityLow
	}

	if input.DueDate == "" {
		return nil, domain.NewValidationError("due_date", "is required")
	}
	due, err := domain.ParseDueDate(input.DueDate)
	if err != nil {
		return nil, err
	}

	now := s.timeFunc().UTC()
	task := &domain.Task{
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     due,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		s.logger.Error("failed to create task",
			"error", err,
			"owner_id", ownerID)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("task created",
		"task_id", task.ID,
		"owner_id", ownerID)
	return task, nil
}

// List returns the owner's tasks.
func (s *TaskServiceImpl) List(ctx context.Context, ownerID int64) ([]*domain.Task, error) {
	tasks, err := s.taskStore.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to list tasks",
			"error", err,
			"owner_id", ownerID)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Get returns a single task scoped to the owner.
func (s *TaskServiceImpl) Get(ctx context.Context, ownerID, taskID int64) (*domain.Task, error) {
	task, err := s.taskStore.GetByIDAndOwner(ctx, taskID, ownerID)
	if err != nil {
		if !errors.Is(err, store.ErrTaskNotFound) {
			s.logger.Error("failed to get task",
				"error", err,
				"task_id", taskID,
				"owner_id", ownerID)
		}
		return nil, err
	}
	return task, nil
}

// Update applies a partial update to the owner's task inside a transaction
// so a concurrent update on the same task cannot interleave with the
// read-modify-write (last writer wins).
func (s *TaskServiceImpl) Update(ctx context.Context, ownerID, taskID int64, input UpdateTaskInput) (*domain.Task, error) {
	var updated *domain.Task

	apply := func(ctx context.Context, taskStore store.TaskStore) error {
		task, err := taskStore.GetByIDAndOwner(ctx, taskID, ownerID)
		if err != nil {
			return err
		}

		if input.Title != nil {
			task.Title = *input.Title
		}
		if input.Description != nil {
			task.Description = *input.Description
		}
		if input.Status != nil {
			task.Status = domain.TaskStatus(*input.Status)
		}
		if input.Priority != nil {
			task.Priority = domain.TaskPriority(*input.Priority)
		}
		if input.DueDate != nil {
			due, err := domain.ParseDueDate(*input.DueDate)
			if err != nil {
				return err
			}
			task.DueDate = due
		}

		// Always refreshed, even when the patch changed nothing.
		task.UpdatedAt = s.timeFunc().UTC()

		if err := task.Validate(); err != nil {
			return err
		}

		if err := taskStore.Update(ctx, task); err != nil {
			return err
		}

		updated = task
		return nil
	}

	var err error
	if s.db != nil {
		err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			return apply(ctx, s.taskStore.WithTx(tx))
		})
	} else {
		err = apply(ctx, s.taskStore)
	}

	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) || errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		s.logger.Error("failed to update task",
			"error", err,
			"task_id", taskID,
			"owner_id", ownerID)
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info("task updated",
		"task_id", taskID,
		"owner_id", ownerID)
	return updated, nil
}
