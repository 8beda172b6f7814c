package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/auth"
	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/models"
	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/services"
	pkghttp "github.com/bugrabasbostanci/funny-yellow-sub001/pkg/http"
)

// AuthServiceInterface defines the login gate contract.
type AuthServiceInterface interface {
	Login(ctx context.Context, origin, username, password string) (*services.AuthResponse, error)
}

// AuthHandler handles admin authentication HTTP requests.
type AuthHandler struct {
	service      AuthServiceInterface
	originConfig *pkghttp.OriginConfig
	cookieConfig auth.CookieConfig
	tokenExpiry  time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service AuthServiceInterface, originConfig *pkghttp.OriginConfig, cookieConfig auth.CookieConfig, tokenExpiry time.Duration) *AuthHandler {
	return &AuthHandler{
		service:      service,
		originConfig: originConfig,
		cookieConfig: cookieConfig,
		tokenExpiry:  tokenExpiry,
	}
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse echoes the verified principal for session checks.
type SessionResponse struct {
	Username    string `json:"username"`
	PrincipalID string `json:"principal_id"`
	ExpiresAt   int64  `json:"expires_at"`
}

// Login handles POST /api/admin/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	origin := pkghttp.ExtractOrigin(r, h.originConfig)

	resp, err := h.service.Login(r.Context(), origin, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrBadRequest):
			pkghttp.WriteBadRequest(w, "Username and password are required")
		case errors.Is(err, models.ErrUnauthorized):
			pkghttp.WriteUnauthorized(w, "Invalid username or password")
		case errors.Is(err, models.ErrRateLimitExceeded):
			pkghttp.WriteTooManyRequests(w, "Too many login attempts. Try again in 15 minutes.")
		case errors.Is(err, models.ErrServerMisconfigured):
			pkghttp.WriteInternalError(w, "Server configuration error")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	// Cookie variant for server-rendered admin pages; the SPA keeps the
	// token from the body.
	auth.SetAdminTokenCookie(w, resp.Token, h.tokenExpiry, h.cookieConfig)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

// Logout handles POST /api/admin/logout. Tokens are self-contained and
// unrevocable, so logout only clears the cookie; the client discards its
// own copy.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearAdminTokenCookie(w, h.cookieConfig)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

// Session handles GET /api/admin/session, reporting the verified
// principal behind the gate.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetPrincipalFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	resp := SessionResponse{
		Username:    claims.Username,
		PrincipalID: claims.PrincipalID,
	}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time.UnixMilli()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}
