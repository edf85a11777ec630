package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmallory/taskdeck-api/internal/mocks"
	"github.com/jmallory/taskdeck-api/internal/service/auth"
)

// newAuthHandler wires an AuthHandler backed by an in-memory user store.
func newAuthHandler(userStore *mocks.MockUserStore, verifierSucceeds bool) *AuthHandler {
	authService := auth.NewService(
		userStore,
		&mocks.MockPasswordHasher{},
		&mocks.MockPasswordVerifier{ShouldSucceed: verifierSucceeds},
		&mocks.MockJWTService{Token: "test-token"},
		nil,
		slog.Default(),
	)
	return NewAuthHandler(authService)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, r)
	return w
}

func TestRegisterHandler(t *testing.T) {
	t.Parallel()

	t.Run("successful registration", func(t *testing.T) {
		t.Parallel()
		userStore := mocks.NewMockUserStore()
		handler := newAuthHandler(userStore, true)

		w := postJSON(t, handler.Register, "/api/register", RegisterRequest{
			Username: "frankie",
			Password: "correct horse battery staple",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp MessageResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "User registered successfully!", resp.Message)
		assert.Equal(t, 1, userStore.Count())
	})

	t.Run("duplicate username returns 400", func(t *testing.T) {
		t.Parallel()
		userStore := mocks.NewMockUserStore()
		handler := newAuthHandler(userStore, true)

		first := postJSON(t, handler.Register, "/api/register", RegisterRequest{
			Username: "frankie", Password: "pw-one",
		})
		require.Equal(t, http.StatusCreated, first.Code)

		second := postJSON(t, handler.Register, "/api/register", RegisterRequest{
			Username: "frankie", Password: "pw-two",
		})

		assert.Equal(t, http.StatusBadRequest, second.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
		assert.Equal(t, "User already exists!", resp["error"])
		assert.Equal(t, 1, userStore.Count())
	})

	t.Run("missing fields return 400", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name string
			body RegisterRequest
		}{
			{"empty username", RegisterRequest{Password: "secret"}},
			{"empty password", RegisterRequest{Username: "frankie"}},
			{"both empty", RegisterRequest{}},
		}
		for _, tc := range tests {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()
				userStore := mocks.NewMockUserStore()
				handler := newAuthHandler(userStore, true)

				w := postJSON(t, handler.Register, "/api/register", tc.body)

				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Equal(t, 0, userStore.Count())
			})
		}
	})

	t.Run("malformed JSON returns 400", func(t *testing.T) {
		t.Parallel()
		handler := newAuthHandler(mocks.NewMockUserStore(), true)

		r := httptest.NewRequest(http.MethodPost, "/api/register",
			bytes.NewReader([]byte(`{"username": "frankie",`)))
		w := httptest.NewRecorder()
		handler.Register(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoginHandler(t *testing.T) {
	t.Parallel()

	// registeredStore returns a store with one user already present.
	registeredStore := func(t *testing.T) *mocks.MockUserStore {
		t.Helper()
		userStore := mocks.NewMockUserStore()
		handler := newAuthHandler(userStore, true)
		w := postJSON(t, handler.Register, "/api/register", RegisterRequest{
			Username: "frankie", Password: "secret",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		return userStore
	}

	t.Run("successful login returns token", func(t *testing.T) {
		t.Parallel()
		handler := newAuthHandler(registeredStore(t), true)

		w := postJSON(t, handler.Login, "/api/login", LoginRequest{
			Username: "frankie", Password: "secret",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var resp TokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "test-token", resp.Token)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		t.Parallel()
		handler := newAuthHandler(registeredStore(t), false)

		wrongPassword := postJSON(t, handler.Login, "/api/login", LoginRequest{
			Username: "frankie", Password: "not-the-password",
		})
		unknownUser := postJSON(t, handler.Login, "/api/login", LoginRequest{
			Username: "nobody", Password: "whatever",
		})

		assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
		assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)

		var respA, respB map[string]any
		require.NoError(t, json.Unmarshal(wrongPassword.Body.Bytes(), &respA))
		require.NoError(t, json.Unmarshal(unknownUser.Body.Bytes(), &respB))
		assert.Equal(t, respA["error"], respB["error"])
		assert.Equal(t, "Invalid credentials!", respA["error"])
	})

	t.Run("missing fields return 400", func(t *testing.T) {
		t.Parallel()
		handler := newAuthHandler(mocks.NewMockUserStore(), true)

		w := postJSON(t, handler.Login, "/api/login", LoginRequest{Username: "frankie"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
