package api

import (
	"errors"
	"net/http"

	"github.com/jmallory/taskdeck-api/internal/api/shared"
	"github.com/jmallory/taskdeck-api/internal/domain"
	"github.com/jmallory/taskdeck-api/internal/service/auth"
	"github.com/jmallory/taskdeck-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors. A task owned by someone else reports the same
	// status as a task that does not exist. Malformed path IDs cannot
	// match any task, so they land here too.
	case errors.Is(err, store.ErrTaskNotFound),
		errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusNotFound

	// Bad request errors. Duplicate usernames report 400, matching the
	// registration contract.
	case errors.Is(err, store.ErrUsernameExists),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	// Validation errors carry a field name and reason that come from our
	// own validation layer, so they are safe to surface verbatim.
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials!"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return "Invalid token"

	case errors.Is(err, store.ErrUsernameExists):
		return "User already exists!"

	case errors.Is(err, store.ErrTaskNotFound),
		errors.Is(err, domain.ErrInvalidID):
		return "Task not found!"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps an error to its status code and sanitized message,
// then writes the response and logs the underlying error with redaction.
// fallbackMessage replaces the generic message for errors with no specific
// mapping; pass "" to keep the mapped message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)

	if fallbackMessage != "" && message == "An unexpected error occurred" {
		message = fallbackMessage
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
