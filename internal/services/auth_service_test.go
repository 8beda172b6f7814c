package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/auth"
	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/models"
	pkgauth "github.com/bugrabasbostanci/funny-yellow-sub001/pkg/auth"
	pkglogger "github.com/bugrabasbostanci/funny-yellow-sub001/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "test-secret-at-least-32-chars-long!!"
	testPassword = "sticker-admin-pass"
)

func newTestAuthService(t *testing.T) (*AuthService, *RateLimitService) {
	t.Helper()

	hash, salt, err := pkgauth.HashPasswordWithNewSalt(testPassword)
	require.NoError(t, err)

	creds := models.AdminCredentials{
		Username:     "admin",
		PasswordHash: hash,
		PasswordSalt: salt,
	}

	logger := slog.Default()
	limiter := NewRateLimitService(DefaultRateLimitConfig(), logger)
	tokens := auth.NewTokenService(testSecret, 24*time.Hour)

	return NewAuthService(creds, tokens, limiter, logger, pkglogger.NewAuditLogger(logger)), limiter
}

func TestAuthService_Login_Success(t *testing.T) {
	service, _ := newTestAuthService(t)

	resp, err := service.Login(context.Background(), "203.0.113.7", "admin", testPassword)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)
	assert.InDelta(t, time.Now().UnixMilli(), resp.Timestamp, float64(5*time.Second.Milliseconds()))

	// The issued token round-trips through verification.
	claims, err := auth.NewTokenService(testSecret, 24*time.Hour).Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	service, _ := newTestAuthService(t)

	_, err := service.Login(context.Background(), "203.0.113.7", "", testPassword)
	assert.ErrorIs(t, err, models.ErrBadRequest)

	_, err = service.Login(context.Background(), "203.0.113.7", "admin", "")
	assert.ErrorIs(t, err, models.ErrBadRequest)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	service, _ := newTestAuthService(t)

	_, err := service.Login(context.Background(), "203.0.113.7", "admin", "wrong")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestAuthService_Login_WrongUsernameSameError(t *testing.T) {
	service, _ := newTestAuthService(t)

	_, badUser := service.Login(context.Background(), "203.0.113.7", "root", testPassword)
	_, badPass := service.Login(context.Background(), "203.0.113.7", "admin", "wrong")

	// Bad username and bad password are indistinguishable to the caller.
	assert.ErrorIs(t, badUser, models.ErrUnauthorized)
	assert.Equal(t, badUser, badPass)
}

func TestAuthService_Login_RateLimited(t *testing.T) {
	service, _ := newTestAuthService(t)

	for i := 0; i < 5; i++ {
		_, err := service.Login(context.Background(), "203.0.113.7", "admin", "wrong")
		assert.ErrorIs(t, err, models.ErrUnauthorized, "attempt %d", i+1)
	}

	_, err := service.Login(context.Background(), "203.0.113.7", "admin", "wrong")
	assert.ErrorIs(t, err, models.ErrRateLimitExceeded)

	// Even the correct password is refused while locked out.
	_, err = service.Login(context.Background(), "203.0.113.7", "admin", testPassword)
	assert.ErrorIs(t, err, models.ErrRateLimitExceeded)

	// A different origin is unaffected.
	resp, err := service.Login(context.Background(), "198.51.100.1", "admin", testPassword)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestAuthService_Login_SuccessClearsLimiter(t *testing.T) {
	service, limiter := newTestAuthService(t)

	for i := 0; i < 4; i++ {
		_, _ = service.Login(context.Background(), "203.0.113.7", "admin", "wrong")
	}

	resp, err := service.Login(context.Background(), "203.0.113.7", "admin", testPassword)
	require.NoError(t, err)
	assert.True(t, resp.Success)

	// Prior failures no longer count: the full budget is back.
	for i := 0; i < 5; i++ {
		assert.True(t, limiter.Allow("203.0.113.7"), "attempt %d", i+1)
	}
}

func TestAuthService_Login_MissingCredentials(t *testing.T) {
	logger := slog.Default()
	limiter := NewRateLimitService(DefaultRateLimitConfig(), logger)
	tokens := auth.NewTokenService(testSecret, 24*time.Hour)

	service := NewAuthService(models.AdminCredentials{}, tokens, limiter, logger, pkglogger.NewAuditLogger(logger))

	// Misconfiguration is a server fault, not an authentication failure.
	_, err := service.Login(context.Background(), "203.0.113.7", "admin", testPassword)
	assert.ErrorIs(t, err, models.ErrServerMisconfigured)
	assert.NotErrorIs(t, err, models.ErrUnauthorized)
}
