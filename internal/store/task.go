package store

import (
	"context"
	"database/sql"

	"github.com/jmallory/taskdeck-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Every operation is scoped by the owning user: a task is never visible
// or mutable through any other identity.
type TaskStore interface {
	// Create saves a new task to the store and assigns its ID.
	// The task's OwnerID must already be set; it is immutable afterwards.
	Create(ctx context.Context, task *domain.Task) error

	// ListByOwner retrieves all tasks belonging to the given owner.
	// The order is stable within a single read. Returns an empty slice,
	// not nil, when the owner has no tasks.
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error)

	// GetByIDAndOwner retrieves a task by ID, restricted to the given owner.
	// Returns ErrTaskNotFound both when no such task exists and when the
	// task belongs to a different owner; callers cannot tell the two apart.
	GetByIDAndOwner(ctx context.Context, id, ownerID int64) (*domain.Task, error)

	// Update persists changes to an existing task, restricted to its owner.
	// Returns ErrTaskNotFound if the task does not exist for that owner.
	Update(ctx context.Context, task *domain.Task) error

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) TaskStore
}
