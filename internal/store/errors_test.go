package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrorClasses(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, ErrUserNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrTaskNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrUsernameExists, ErrDuplicate)

	assert.NotErrorIs(t, ErrUsernameExists, ErrNotFound)
	assert.NotErrorIs(t, ErrTaskNotFound, ErrDuplicate)
}

func TestErrorClassHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		err           error
		wantNotFound  bool
		wantDuplicate bool
	}{
		{"generic not found", ErrNotFound, true, false},
		{"user not found", ErrUserNotFound, true, false},
		{"task not found", ErrTaskNotFound, true, false},
		{"wrapped task not found", fmt.Errorf("lookup failed: %w", ErrTaskNotFound), true, false},
		{"username exists", ErrUsernameExists, false, true},
		{"wrapped duplicate", fmt.Errorf("create failed: %w", ErrUsernameExists), false, true},
		{"unrelated error", errors.New("boom"), false, false},
		{"nil", nil, false, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.wantNotFound, IsNotFoundError(tt.err))
			assert.Equal(t, tt.wantDuplicate, IsDuplicateError(tt.err))
		})
	}
}
