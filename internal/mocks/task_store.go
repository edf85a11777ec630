package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/jmallory/taskdeck-api/internal/domain"
	"github.com/jmallory/taskdeck-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing with an in-memory
// map. Owner scoping matches the real store: lookups for another owner's
// task report store.ErrTaskNotFound, never a distinct "not yours" error.
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn          func(ctx context.Context, task *domain.Task) error
	ListByOwnerFn     func(ctx context.Context, ownerID int64) ([]*domain.Task, error)
	GetByIDAndOwnerFn func(ctx context.Context, id, ownerID int64) (*domain.Task, error)
	UpdateFn          func(ctx context.Context, task *domain.Task) error

	// Errors returned by the default implementation when set
	CreateError error
	UpdateError error

	mu     sync.Mutex
	tasks  map[int64]*domain.Task
	nextID int64
}

// Ensure MockTaskStore implements store.TaskStore
var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates a new mock store with initialized defaults.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		tasks:  make(map[int64]*domain.Task),
		nextID: 1,
	}
}

// Create implements the TaskStore interface.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task.ID = m.nextID
	m.nextID++

	stored := *task
	m.tasks[task.ID] = &stored
	return nil
}

// ListByOwner implements the TaskStore interface.
func (m *MockTaskStore) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tasks := []*domain.Task{}
	// Stable order within a read: ascending by ID.
	for id := int64(1); id < m.nextID; id++ {
		task, ok := m.tasks[id]
		if !ok || task.OwnerID != ownerID {
			continue
		}
		found := *task
		tasks = append(tasks, &found)
	}
	return tasks, nil
}

// GetByIDAndOwner implements the TaskStore interface.
func (m *MockTaskStore) GetByIDAndOwner(ctx context.Context, id, ownerID int64) (*domain.Task, error) {
	if m.GetByIDAndOwnerFn != nil {
		return m.GetByIDAndOwnerFn(ctx, id, ownerID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return nil, store.ErrTaskNotFound
	}

	found := *task
	return &found, nil
}

// Update implements the TaskStore interface.
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	if m.UpdateError != nil {
		return m.UpdateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.tasks[task.ID]
	if !ok || existing.OwnerID != task.OwnerID {
		return store.ErrTaskNotFound
	}

	stored := *task
	m.tasks[task.ID] = &stored
	return nil
}

// WithTx implements the TaskStore interface. The mock has no transaction
// semantics, so it returns itself.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}

// Count returns the number of stored tasks across all owners.
func (m *MockTaskStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Seed inserts a task directly, bypassing the Create path. Useful for
// arranging fixtures with explicit IDs and timestamps.
func (m *MockTaskStore) Seed(task *domain.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if task.ID == 0 {
		task.ID = m.nextID
	}
	if task.ID >= m.nextID {
		m.nextID = task.ID + 1
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = task.CreatedAt
	}

	stored := *task
	m.tasks[task.ID] = &stored
}
