package store

import (
	"context"
	"database/sql"

	"github.com/jmallory/taskdeck-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
// It is the credential store of the system: it owns user records and
// nothing else reads or writes them.
type UserStore interface {
	// Create saves a new user to the store and assigns its ID.
	// Creation is atomic with respect to the username uniqueness check:
	// concurrent creates with the same username result in exactly one
	// success, all others failing with ErrUsernameExists.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user by their username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// WithTx returns a new UserStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller,
	// typically a service.
	WithTx(tx *sql.Tx) UserStore
}
