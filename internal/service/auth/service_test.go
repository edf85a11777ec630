package auth_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/jmallory/taskdeck-api/internal/domain"
	"github.com/jmallory/taskdeck-api/internal/mocks"
	"github.com/jmallory/taskdeck-api/internal/service/auth"
	"github.com/jmallory/taskdeck-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(userStore store.UserStore, verifier auth.PasswordVerifier) *auth.ServiceImpl {
	return auth.NewService(
		userStore,
		&mocks.MockPasswordHasher{},
		verifier,
		&mocks.MockJWTService{Token: "test-token"},
		nil, // no db handle: store operations run without a transaction
		slog.Default(),
	)
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("successful registration", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		svc := newTestService(userStore, &mocks.MockPasswordVerifier{ShouldSucceed: true})

		userID, err := svc.Register(context.Background(), "alice", "s3cret-pass")
		require.NoError(t, err)
		assert.Positive(t, userID)
		assert.Equal(t, 1, userStore.Count())

		stored, err := userStore.GetByUsername(context.Background(), "alice")
		require.NoError(t, err)
		assert.NotEqual(t, "s3cret-pass", stored.HashedPassword, "plaintext must never be stored")
	})

	t.Run("empty username", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		svc := newTestService(userStore, &mocks.MockPasswordVerifier{})

		_, err := svc.Register(context.Background(), "", "s3cret-pass")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, 0, userStore.Count())
	})

	t.Run("empty password", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		svc := newTestService(userStore, &mocks.MockPasswordVerifier{})

		_, err := svc.Register(context.Background(), "alice", "")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, 0, userStore.Count())
	})

	t.Run("duplicate username", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		svc := newTestService(userStore, &mocks.MockPasswordVerifier{})

		_, err := svc.Register(context.Background(), "alice", "first-pass")
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), "alice", "second-pass")
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrUsernameExists)
		assert.Equal(t, 1, userStore.Count(), "failed registration must not leave partial state")
	})

	t.Run("concurrent duplicate registrations", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		svc := newTestService(userStore, &mocks.MockPasswordVerifier{})

		const attempts = 8
		results := make(chan error, attempts)

		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.Register(context.Background(), "racer", "s3cret-pass")
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		var successes, duplicates int
		for err := range results {
			switch {
			case err == nil:
				successes++
			case store.IsDuplicateError(err):
				duplicates++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}

		assert.Equal(t, 1, successes, "exactly one registration must win")
		assert.Equal(t, attempts-1, duplicates)
		assert.Equal(t, 1, userStore.Count())
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T, verifier auth.PasswordVerifier) (*auth.ServiceImpl, *mocks.MockUserStore) {
		t.Helper()
		userStore := mocks.NewMockUserStore()
		svc := newTestService(userStore, verifier)
		_, err := svc.Register(context.Background(), "alice", "s3cret-pass")
		require.NoError(t, err)
		return svc, userStore
	}

	t.Run("successful login returns token", func(t *testing.T) {
		t.Parallel()

		svc, _ := setup(t, &mocks.MockPasswordVerifier{ShouldSucceed: true})

		token, err := svc.Login(context.Background(), "alice", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, "test-token", token)
	})

	t.Run("wrong password and unknown username are indistinguishable", func(t *testing.T) {
		t.Parallel()

		svc, _ := setup(t, &mocks.MockPasswordVerifier{ShouldSucceed: false})

		_, wrongPasswordErr := svc.Login(context.Background(), "alice", "wrong-pass")
		_, unknownUserErr := svc.Login(context.Background(), "nobody", "whatever")

		require.Error(t, wrongPasswordErr)
		require.Error(t, unknownUserErr)
		assert.ErrorIs(t, wrongPasswordErr, auth.ErrInvalidCredentials)
		assert.ErrorIs(t, unknownUserErr, auth.ErrInvalidCredentials)
		assert.Equal(t, wrongPasswordErr.Error(), unknownUserErr.Error())
	})
}
