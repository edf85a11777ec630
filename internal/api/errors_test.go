package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmallory/taskdeck-api/internal/domain"
	"github.com/jmallory/taskdeck-api/internal/service/auth"
	"github.com/jmallory/taskdeck-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"missing token", auth.ErrMissingToken, http.StatusUnauthorized},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"invalid id", domain.ErrInvalidID, http.StatusNotFound},
		{"username exists", store.ErrUsernameExists, http.StatusBadRequest},
		{"validation error", domain.NewValidationError("title", "cannot be empty"), http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"wrapped task not found", fmt.Errorf("update: %w", store.ErrTaskNotFound), http.StatusNotFound},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("validation errors surface field and reason", func(t *testing.T) {
		t.Parallel()
		err := domain.NewValidationError("due_date", "must be a valid date in YYYY-MM-DD format")
		assert.Equal(t, "due_date: must be a valid date in YYYY-MM-DD format", GetSafeErrorMessage(err))
	})

	t.Run("known sentinels map to fixed messages", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Invalid credentials!", GetSafeErrorMessage(auth.ErrInvalidCredentials))
		assert.Equal(t, "User already exists!", GetSafeErrorMessage(store.ErrUsernameExists))
		assert.Equal(t, "Task not found!", GetSafeErrorMessage(store.ErrTaskNotFound))
	})

	t.Run("unknown errors never leak details", func(t *testing.T) {
		t.Parallel()
		err := errors.New("pq: duplicate key value violates unique constraint on host db-prod-3")
		msg := GetSafeErrorMessage(err)
		assert.Equal(t, "An unexpected error occurred", msg)
	})

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	})
}
