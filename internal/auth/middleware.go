package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/models"
	pkghttp "github.com/bugrabasbostanci/funny-yellow-sub001/pkg/http"
)

// contextKey is a custom type for context keys
type contextKey string

const (
	// PrincipalContextKey is the key for storing verified claims in context
	PrincipalContextKey contextKey = "principal"
)

// GateConfig holds AuthGate behavior settings.
type GateConfig struct {
	// DebugLogging enables per-request token diagnostics. Off by default;
	// it logs request origin and token presence on every admin call.
	DebugLogging bool
}

// AuthGate verifies the admin session token on every request it wraps.
// The login endpoint must stay outside this gate; everything else under
// the admin prefix goes through it so no handler can skip the check.
//
// The token is read from the Authorization header (Bearer scheme) first,
// then from the admin_token cookie for server-rendered checks.
func AuthGate(ts *TokenService, logger *slog.Logger, config GateConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)

			if config.DebugLogging {
				logger.Debug("admin request",
					slog.String("path", r.URL.Path),
					slog.String("remote_addr", r.RemoteAddr),
					slog.Bool("token_present", tokenString != ""),
				)
			}

			if tokenString == "" {
				pkghttp.WriteErrorWithDetails(w, http.StatusUnauthorized,
					"unauthorized", "no token provided", r.URL.Path)
				return
			}

			claims, err := ts.Verify(tokenString)
			if err != nil {
				pkghttp.WriteErrorWithDetails(w, http.StatusUnauthorized,
					"unauthorized", "invalid token", r.URL.Path)
				return
			}

			ctx := context.WithValue(r.Context(), PrincipalContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken pulls the bearer token from the Authorization header,
// falling back to the admin token cookie.
func extractToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	if token, err := GetAdminTokenCookie(r); err == nil {
		return token
	}
	return ""
}

// GetPrincipalFromContext extracts verified claims from request context.
// Returns nil outside the gate.
func GetPrincipalFromContext(r *http.Request) *models.TokenClaims {
	claims, ok := r.Context().Value(PrincipalContextKey).(*models.TokenClaims)
	if !ok {
		return nil
	}
	return claims
}
