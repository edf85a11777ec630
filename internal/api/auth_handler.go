package api

import (
	"errors"
	"net/http"

	"github.com/jmallory/taskdeck-api/internal/api/shared"
	"github.com/jmallory/taskdeck-api/internal/domain"
	"github.com/jmallory/taskdeck-api/internal/platform/logger"
	"github.com/jmallory/taskdeck-api/internal/service/auth"
	"github.com/jmallory/taskdeck-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	authService auth.Service
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles the POST /api/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), nil)

	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Username and password are required")
		return
	}

	userID, err := h.authService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUsernameExists):
			shared.RespondWithError(w, r, http.StatusBadRequest, "User already exists!")
		case errors.Is(err, domain.ErrValidation):
			HandleAPIError(w, r, err, "")
		default:
			log.Error("failed to register user", "error", err, "username", req.Username)
			shared.RespondWithErrorAndLog(
				w, r, http.StatusInternalServerError, "Failed to register user", err)
		}
		return
	}

	log.Info("user registered", "user_id", userID)
	shared.RespondWithJSON(w, r, http.StatusCreated, MessageResponse{
		Message: "User registered successfully!",
	})
}

// Login handles the POST /api/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), nil)

	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Username and password are required")
		return
	}

	token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			// Unknown usernames and wrong passwords share this path; the
			// response gives no hint which one it was.
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials!")
			return
		}
		log.Error("failed to authenticate user", "error", err)
		shared.RespondWithErrorAndLog(
			w, r, http.StatusInternalServerError, "Failed to authenticate user", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{Token: token})
}
