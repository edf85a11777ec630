package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/test", nil)

	RespondWithJSON(w, r, http.StatusCreated, map[string]string{"message": "created"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "created", body["message"])
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	t.Run("includes trace ID from context", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/test", nil)
		ctx := SetTraceID(r.Context())
		r = r.WithContext(ctx)

		RespondWithError(w, r, http.StatusNotFound, "Task not found")

		assert.Equal(t, http.StatusNotFound, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Task not found", resp.Error)
		assert.Equal(t, GetTraceID(ctx), resp.TraceID)
	})

	t.Run("omits trace ID when absent", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/test", nil)

		RespondWithError(w, r, http.StatusBadRequest, "Invalid request")

		var raw map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
		assert.NotContains(t, raw, "trace_id")
	})
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPut, "/api/tasks/1", nil)
	r = r.WithContext(SetTraceID(context.Background()))

	internalErr := errors.New("pq: connection refused host=db.internal password=hunter2")
	RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Internal server error", internalErr)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// Raw error details must never leak into the response body.
	body := w.Body.String()
	assert.NotContains(t, body, "hunter2")
	assert.NotContains(t, body, "db.internal")

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Equal(t, "Internal server error", resp.Error)
	assert.NotEmpty(t, resp.TraceID)
}
