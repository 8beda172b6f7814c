package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the payload carried by an admin session token.
// PrincipalID is an opaque identifier minted at issuance; it is not secret.
type TokenClaims struct {
	PrincipalID string `json:"principal_id"`
	Username    string `json:"username"`
	jwt.RegisteredClaims
}

// LoginAttempt tracks failed login pressure from a single client origin.
// Records live in process memory and are reset logically: a record older
// than the lockout window counts as a fresh one.
type LoginAttempt struct {
	Origin        string
	Count         int
	LastAttemptAt time.Time
}

// AdminCredentials is the single configured administrative principal.
// The hash and salt are hex-encoded; see pkg/auth for the scheme.
type AdminCredentials struct {
	Username     string
	PasswordHash string
	PasswordSalt string
}

// Complete reports whether every credential field is configured.
func (c AdminCredentials) Complete() bool {
	return c.Username != "" && c.PasswordHash != "" && c.PasswordSalt != ""
}
