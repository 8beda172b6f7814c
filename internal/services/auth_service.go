package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/auth"
	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/models"
	pkgauth "github.com/bugrabasbostanci/funny-yellow-sub001/pkg/auth"
	pkglogger "github.com/bugrabasbostanci/funny-yellow-sub001/pkg/logger"
)

// AuthResponse is the successful login payload.
type AuthResponse struct {
	Success   bool   `json:"success"`
	Token     string `json:"token"`
	Timestamp int64  `json:"timestamp"`
}

// AuthService answers login requests for the single admin principal.
type AuthService struct {
	creds       models.AdminCredentials
	tokens      *auth.TokenService
	rateLimiter *RateLimitService
	logger      *slog.Logger
	audit       *pkglogger.AuditLogger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	creds models.AdminCredentials,
	tokens *auth.TokenService,
	rateLimiter *RateLimitService,
	logger *slog.Logger,
	audit *pkglogger.AuditLogger,
) *AuthService {
	return &AuthService{
		creds:       creds,
		tokens:      tokens,
		rateLimiter: rateLimiter,
		logger:      logger,
		audit:       audit,
	}
}

// Login runs the gate sequence for one attempt. Each step short-circuits:
//
//  1. empty input            -> ErrBadRequest
//  2. rate limit tripped     -> ErrRateLimitExceeded
//  3. missing credentials    -> ErrServerMisconfigured (deployment fault)
//  4. username/password both -> ErrUnauthorized on any mismatch
//
// Bad username and bad password collapse into one error so the response
// never reveals which half was wrong.
func (s *AuthService) Login(ctx context.Context, origin, username, password string) (*AuthResponse, error) {
	if username == "" || password == "" {
		return nil, models.ErrBadRequest
	}

	if !s.rateLimiter.Allow(origin) {
		s.audit.LogLockout(origin, s.rateLimiter.config.MaxAttempts)
		return nil, models.ErrRateLimitExceeded
	}

	if !s.creds.Complete() {
		// Deployment error, not an attacker. Log loudly, answer vaguely.
		s.logger.Error("admin credentials not configured; refusing login",
			slog.Bool("username_set", s.creds.Username != ""),
			slog.Bool("hash_set", s.creds.PasswordHash != ""),
			slog.Bool("salt_set", s.creds.PasswordSalt != ""),
		)
		return nil, models.ErrServerMisconfigured
	}

	usernameOK := username == s.creds.Username
	passwordOK := pkgauth.VerifyPassword(password, s.creds.PasswordHash, s.creds.PasswordSalt)
	if !usernameOK || !passwordOK {
		s.audit.LogAuthAttempt(pkglogger.AuditEvent{
			EventType:     "login",
			Username:      username,
			Origin:        origin,
			Success:       false,
			FailureReason: "credential mismatch",
		})
		return nil, models.ErrUnauthorized
	}

	s.rateLimiter.Clear(origin)

	token, err := s.tokens.Issue(username)
	if err != nil {
		s.logger.Error("failed to issue session token", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.audit.LogAuthAttempt(pkglogger.AuditEvent{
		EventType: "login",
		Username:  username,
		Origin:    origin,
		Success:   true,
	})

	return &AuthResponse{
		Success:   true,
		Token:     token,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}
