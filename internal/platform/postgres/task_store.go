package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmallory/taskdeck-api/internal/domain"
	"github.com/jmallory/taskdeck-api/internal/platform/logger"
	"github.com/jmallory/taskdeck-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
// Every query is predicated on owner_id so cross-owner access degenerates
// to "no rows" at the SQL level rather than being checked in code.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
// It saves a new task and assigns its ID.
// Returns store.ErrInvalidEntity if the owner does not exist.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO tasks (owner_id, title, description, status, priority, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		task.OwnerID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.DueDate,
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation",
				slog.Int64("owner_id", task.OwnerID))
			return fmt.Errorf("%w: owner with ID %d not found",
				store.ErrInvalidEntity, task.OwnerID)
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.Int64("owner_id", task.OwnerID))
		return fmt.Errorf("failed to create task: %w", err)
	}

	log.Info("task created successfully",
		slog.Int64("task_id", task.ID),
		slog.Int64("owner_id", task.OwnerID))
	return nil
}

// ListByOwner implements store.TaskStore.ListByOwner
// The order is stable within a read (ascending by id). Returns an empty
// slice, not nil, when the owner has no tasks.
func (s *PostgresTaskStore) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, owner_id, title, description, status, priority, due_date, created_at, updated_at
		FROM tasks
		WHERE owner_id = $1
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to query tasks by owner",
			slog.String("error", err.Error()),
			slog.Int64("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row",
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}

	log.Debug("listed tasks by owner",
		slog.Int64("owner_id", ownerID),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// GetByIDAndOwner implements store.TaskStore.GetByIDAndOwner
// Returns store.ErrTaskNotFound both for an absent task and for a task
// owned by somebody else; the two cases are indistinguishable by design.
func (s *PostgresTaskStore) GetByIDAndOwner(ctx context.Context, id, ownerID int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, owner_id, title, description, status, priority, due_date, created_at, updated_at
		FROM tasks
		WHERE id = $1 AND owner_id = $2
	`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for owner",
				slog.Int64("task_id", id),
				slog.Int64("owner_id", ownerID))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id),
			slog.Int64("owner_id", ownerID))
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// Update implements store.TaskStore.Update
// The WHERE clause is scoped by owner, so updating another owner's task
// affects zero rows and reports store.ErrTaskNotFound.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return err
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, priority = $4, due_date = $5, updated_at = $6
		WHERE id = $7 AND owner_id = $8
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.DueDate,
		task.UpdatedAt,
		task.ID,
		task.OwnerID,
	)

	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID),
			slog.Int64("owner_id", task.OwnerID))
		return fmt.Errorf("failed to update task: %w", err)
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("task not found for update",
				slog.Int64("task_id", task.ID),
				slog.Int64("owner_id", task.OwnerID))
		}
		return err
	}

	log.Info("task updated successfully",
		slog.Int64("task_id", task.ID),
		slog.Int64("owner_id", task.OwnerID))
	return nil
}

// WithTx implements store.TaskStore.WithTx
// It returns a new store bound to the given transaction.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask maps one tasks row onto a domain Task. Status and priority
// come back as text and are narrowed to their domain types; due_date is
// a DATE column and scans to a midnight UTC time.
func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var status, priority string

	err := row.Scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&task.Description,
		&status,
		&priority,
		&task.DueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Status = domain.TaskStatus(status)
	task.Priority = domain.TaskPriority(priority)
	return &task, nil
}
