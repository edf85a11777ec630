package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/jmallory/taskdeck-api/internal/domain"
	"github.com/jmallory/taskdeck-api/internal/store"
)

// MockUserStore implements store.UserStore for testing.
// The default implementation is an in-memory map guarded by a mutex, so
// the check-and-insert in Create is atomic just like the real store's
// unique constraint.
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, user *domain.User) error
	GetByIDFn       func(ctx context.Context, id int64) (*domain.User, error)
	GetByUsernameFn func(ctx context.Context, username string) (*domain.User, error)

	// Errors returned by the default implementation when set
	CreateError        error
	GetByUsernameError error

	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int64
}

// Ensure MockUserStore implements store.UserStore
var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a new mock store with initialized defaults.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		users:  make(map[string]*domain.User),
		nextID: 1,
	}
}

// Create implements the UserStore interface.
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[user.Username]; exists {
		return store.ErrUsernameExists
	}

	user.ID = m.nextID
	m.nextID++

	stored := *user
	m.users[user.Username] = &stored
	return nil
}

// GetByID implements the UserStore interface.
func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.ID == id {
			found := *user
			return &found, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetByUsername implements the UserStore interface.
func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}

	if m.GetByUsernameError != nil {
		return nil, m.GetByUsernameError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, exists := m.users[username]
	if !exists {
		return nil, store.ErrUserNotFound
	}

	found := *user
	return &found, nil
}

// WithTx implements the UserStore interface. The mock has no transaction
// semantics, so it returns itself.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

// Count returns the number of stored users.
func (m *MockUserStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}
