package auth

import (
	"net/http"
	"time"
)

// AdminTokenCookieName is the cookie used by server-rendered admin pages.
// The Authorization header remains the primary transport; the cookie feeds
// the same verification path.
const AdminTokenCookieName = "admin_token"

// CookieConfig holds cookie attribute settings.
type CookieConfig struct {
	Secure   bool   // HTTPS only
	SameSite string // "strict", "lax", or "none"
}

// SetAdminTokenCookie stores the session token in an httpOnly cookie.
func SetAdminTokenCookie(w http.ResponseWriter, token string, maxAge time.Duration, config CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     AdminTokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(maxAge),
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   config.Secure,
		SameSite: parseSameSite(config.SameSite),
	})
}

// ClearAdminTokenCookie deletes the session token cookie.
func ClearAdminTokenCookie(w http.ResponseWriter, config CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     AdminTokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   config.Secure,
		SameSite: parseSameSite(config.SameSite),
	})
}

// GetAdminTokenCookie reads the session token cookie, if present.
func GetAdminTokenCookie(r *http.Request) (string, error) {
	cookie, err := r.Cookie(AdminTokenCookieName)
	if err != nil {
		return "", err
	}
	return cookie.Value, nil
}

func parseSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "strict":
		return http.SameSiteStrictMode
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteDefaultMode
	}
}
