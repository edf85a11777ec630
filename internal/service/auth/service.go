package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmallory/taskdeck-api/internal/domain"
	"github.com/jmallory/taskdeck-api/internal/store"
)

// Service provides the registration and login flows.
// Token validation lives on JWTService; it needs no store access.
type Service interface {
	// Register creates a new user account and returns its ID.
	// Fails with a domain ValidationError when the username or password is
	// empty, and with store.ErrUsernameExists when the username is taken.
	// The plaintext password is hashed before it reaches any store and is
	// never logged.
	Register(ctx context.Context, username, password string) (int64, error)

	// Login verifies the credentials and mints a signed token for the user.
	// Fails with ErrInvalidCredentials on any mismatch; the error is
	// identical whether the username is unknown or the password is wrong.
	Login(ctx context.Context, username, password string) (string, error)
}

// ServiceImpl implements the Service interface.
type ServiceImpl struct {
	userStore  store.UserStore
	hasher     PasswordHasher
	verifier   PasswordVerifier
	jwtService JWTService
	db         *sql.DB
	logger     *slog.Logger
}

// Ensure ServiceImpl implements Service interface
var _ Service = (*ServiceImpl)(nil)

// NewService creates a new authentication Service.
// The db handle is used to run user creation in a transaction; it may be
// nil in tests, in which case creation runs directly against the store.
func NewService(
	userStore store.UserStore,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	jwtService JWTService,
	db *sql.DB,
	logger *slog.Logger,
) *ServiceImpl {
	return &ServiceImpl{
		userStore:  userStore,
		hasher:     hasher,
		verifier:   verifier,
		jwtService: jwtService,
		db:         db,
		logger:     logger.With("component", "auth_service"),
	}
}

// Register creates a new user with a hashed password.
func (s *ServiceImpl) Register(ctx context.Context, username, password string) (int64, error) {
	if username == "" {
		return 0, domain.NewValidationError("username", "cannot be empty")
	}
	if password == "" {
		return 0, domain.NewValidationError("password", "cannot be empty")
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password",
			"error", err,
			"username", username)
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := domain.NewUser(username, hashed)
	if err != nil {
		return 0, err
	}

	if s.db != nil {
		err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			return s.userStore.WithTx(tx).Create(ctx, user)
		})
	} else {
		err = s.userStore.Create(ctx, user)
	}

	if err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			s.logger.Debug("attempted to register existing username",
				"username", username)
		} else {
			s.logger.Error("failed to save user",
				"error", err,
				"username", username)
		}
		return 0, err
	}

	s.logger.Info("user registered",
		"user_id", user.ID,
		"username", username)
	return user.ID, nil
}

// Login verifies credentials and issues a token.
func (s *ServiceImpl) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Same outcome as a wrong password so usernames cannot be probed.
			s.logger.Debug("login attempt for unknown username",
				"username", username)
			return "", ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user for login",
			"error", err,
			"username", username)
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("login attempt with wrong password",
			"username", username)
		return "", ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(ctx, user.ID)
	if err != nil {
		s.logger.Error("failed to generate token",
			"error", err,
			"user_id", user.ID)
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return token, nil
}
