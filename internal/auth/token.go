package auth

import (
	"fmt"
	"time"

	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService signs and verifies self-contained admin session tokens.
// The server keeps no session state; a token is valid until its embedded
// expiry, and rotating the secret invalidates everything outstanding.
type TokenService struct {
	secret string
	expiry time.Duration
}

// NewTokenService creates a TokenService with the given symmetric secret
// and token lifetime.
func NewTokenService(secret string, expiry time.Duration) *TokenService {
	return &TokenService{
		secret: secret,
		expiry: expiry,
	}
}

// Issue mints a signed token for the authenticated admin principal.
// Each token carries a fresh principal id, the username, and iat/exp.
func (ts *TokenService) Issue(username string) (string, error) {
	now := time.Now()

	claims := &models.TokenClaims{
		PrincipalID: uuid.New().String(),
		Username:    username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(ts.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// Verify checks the signature and expiry of a token and returns its
// claims. Invalid or expired tokens report models.ErrUnauthorized; the
// caller never learns which check failed.
func (ts *TokenService) Verify(tokenString string) (*models.TokenClaims, error) {
	claims := &models.TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.secret), nil
	})
	if err != nil {
		return nil, models.ErrUnauthorized
	}

	if !token.Valid {
		return nil, models.ErrUnauthorized
	}

	if claims.ExpiresAt == nil || !time.Now().Before(claims.ExpiresAt.Time) {
		return nil, models.ErrUnauthorized
	}

	return claims, nil
}
