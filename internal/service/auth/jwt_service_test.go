package auth

import (
	"context"
	"testing"
	"time"

	"github.com/jmallory/taskdeck-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestJWTService builds an hmacJWTService with an injectable clock.
func newTestJWTService(secret string, lifetime time.Duration, timeFunc func() time.Time) *hmacJWTService {
	return &hmacJWTService{
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		timeFunc:      timeFunc,
		clockSkew:     0,
	}
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute
	secret := "test-secret-that-is-long-enough-for-testing"
	userID := int64(42)

	svc := newTestJWTService(secret, tokenLifetime, func() time.Time {
		return fixedTime
	})

	t.Run("generates valid token", func(t *testing.T) {
		t.Parallel()

		token, err := svc.GenerateToken(context.Background(), userID)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.ValidateToken(context.Background(), token)
		require.NoError(t, err)

		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "42", claims.Subject)
		// Compare Unix timestamps to avoid timezone issues
		assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
		assert.Equal(t, fixedTime.Add(tokenLifetime).Unix(), claims.ExpiresAt.Unix())
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("tokens carry unique ids", func(t *testing.T) {
		t.Parallel()

		first, err := svc.GenerateToken(context.Background(), userID)
		require.NoError(t, err)
		second, err := svc.GenerateToken(context.Background(), userID)
		require.NoError(t, err)

		firstClaims, err := svc.ValidateToken(context.Background(), first)
		require.NoError(t, err)
		secondClaims, err := svc.ValidateToken(context.Background(), second)
		require.NoError(t, err)

		assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
	})
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute
	secret := "test-secret-that-is-long-enough-for-testing"
	wrongSecret := "wrong-secret-that-is-long-enough-for-tests"
	userID := int64(7)

	issuer := newTestJWTService(secret, tokenLifetime, func() time.Time {
		return fixedTime
	})

	token, err := issuer.GenerateToken(context.Background(), userID)
	require.NoError(t, err)

	t.Run("rejects expired token", func(t *testing.T) {
		t.Parallel()

		validator := newTestJWTService(secret, tokenLifetime, func() time.Time {
			return fixedTime.Add(tokenLifetime + time.Minute)
		})

		_, err := validator.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("accepts token just before expiry", func(t *testing.T) {
		t.Parallel()

		validator := newTestJWTService(secret, tokenLifetime, func() time.Time {
			return fixedTime.Add(tokenLifetime - time.Minute)
		})

		claims, err := validator.ValidateToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
	})

	t.Run("rejects token signed with a different key", func(t *testing.T) {
		t.Parallel()

		validator := newTestJWTService(wrongSecret, tokenLifetime, func() time.Time {
			return fixedTime
		})

		_, err := validator.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects malformed token", func(t *testing.T) {
		t.Parallel()

		_, err := issuer.ValidateToken(context.Background(), "not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects empty token", func(t *testing.T) {
		t.Parallel()

		_, err := issuer.ValidateToken(context.Background(), "")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	t.Run("rejects short secret", func(t *testing.T) {
		t.Parallel()

		_, err := NewJWTService(config.AuthConfig{
			JWTSecret:            "too-short",
			TokenLifetimeMinutes: 60,
		})
		require.Error(t, err)
	})

	t.Run("accepts 32 character secret", func(t *testing.T) {
		t.Parallel()

		svc, err := NewJWTService(config.AuthConfig{
			JWTSecret:            "test-jwt-secret-that-is-32-chars!",
			TokenLifetimeMinutes: 60,
		})
		require.NoError(t, err)
		require.NotNil(t, svc)
	})
}
