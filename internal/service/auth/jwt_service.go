// Package auth implements the authentication services: password hashing
// and verification, token issuance and validation, and the registration
// and login flows built on top of them.
package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for the given user.
	// Returns the token string or an error if token generation fails.
	GenerateToken(ctx context.Context, userID int64) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. The token is self-contained: validation checks signature and
	// expiry only and never touches the credential store.
	// Returns ErrExpiredToken or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the validated contents of an authentication token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID int64 `json:"uid,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
