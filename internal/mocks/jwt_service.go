package mocks

import (
	"context"
	"time"

	"github.com/jmallory/taskdeck-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing.
type MockJWTService struct {
	// Token is returned by GenerateToken when GenerateTokenFn is unset.
	Token string

	// Claims is returned by ValidateToken when ValidateTokenFn is unset.
	Claims *auth.Claims

	// Err is returned by both methods when set.
	Err error

	// Function fields for customizable behavior
	GenerateTokenFn func(ctx context.Context, userID int64) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)
}

// Ensure MockJWTService implements auth.JWTService
var _ auth.JWTService = (*MockJWTService)(nil)

// GenerateToken implements the auth.JWTService interface.
func (m *MockJWTService) GenerateToken(ctx context.Context, userID int64) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Token, nil
}

// ValidateToken implements the auth.JWTService interface.
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Claims != nil {
		return m.Claims, nil
	}
	return &auth.Claims{
		UserID:    1,
		IssuedAt:  time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}, nil
}
