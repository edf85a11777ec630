package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jmallory/taskdeck-api/internal/api/shared"
	"github.com/jmallory/taskdeck-api/internal/domain"
	"github.com/jmallory/taskdeck-api/internal/platform/logger"
)

// getUserIDFromContext extracts the authenticated user's ID from the request
// context. The user ID is placed in the context by the authentication
// middleware; a missing or non-positive ID means the middleware did not run.
func getUserIDFromContext(r *http.Request) (int64, bool) {
	userID, ok := shared.UserID(r.Context())
	if !ok || userID <= 0 {
		return 0, false
	}
	return userID, true
}

// getPathID extracts a positive integer ID from the URL path parameters.
// Non-numeric or non-positive values yield domain.ErrInvalidID, which the
// error mapper reports the same way as a missing record.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, fmt.Errorf("%w: missing %s", domain.ErrInvalidID, paramName)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: malformed %s", domain.ErrInvalidID, paramName)
	}

	return id, nil
}

// handleUserIDAndPathID extracts both the user ID from context and an integer
// ID from the path. It writes an error response and returns false if either
// extraction fails.
func handleUserIDAndPathID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (int64, int64, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return 0, 0, false
	}

	pathID, err := getPathID(r, paramName)
	if err != nil {
		log.Debug("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return 0, 0, false
	}

	return userID, pathID, true
}
