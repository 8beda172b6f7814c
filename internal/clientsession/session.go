package clientsession

import (
	"strconv"
	"time"
)

// Storage keys. The boolean flag predates token storage and is kept so
// older admin panel builds that only check the flag keep working.
const (
	TokenKey         = "admin_token"
	EstablishedAtKey = "admin_token_established_at"
	LegacyAuthKey    = "admin_authenticated"
)

// SessionTTL mirrors the server-side token lifetime. The client expires
// its cached session at the same horizon so it never presents a token
// the server is guaranteed to reject.
const SessionTTL = 24 * time.Hour

// Session is the client-held view of an admin login: the token plus
// when it was established, cached in a Store.
type Session struct {
	store Store
	ttl   time.Duration

	now func() time.Time
}

// New creates a client session cache over the given store.
func New(store Store) *Session {
	return &Session{
		store: store,
		ttl:   SessionTTL,
		now:   time.Now,
	}
}

// Establish records a fresh login: the token, the establishment time,
// and the legacy flag.
func (s *Session) Establish(token string) error {
	if err := s.store.Set(TokenKey, token); err != nil {
		return err
	}
	at := strconv.FormatInt(s.now().UnixMilli(), 10)
	if err := s.store.Set(EstablishedAtKey, at); err != nil {
		return err
	}
	return s.store.Set(LegacyAuthKey, "true")
}

// Current returns the cached token if a session is established and has
// not outlived its TTL. An expired or malformed session is cleared as a
// side effect, so the next Current call starts clean.
func (s *Session) Current() (string, bool) {
	token, ok := s.store.Get(TokenKey)
	if !ok || token == "" {
		return "", false
	}

	atRaw, ok := s.store.Get(EstablishedAtKey)
	if !ok {
		_ = s.Clear()
		return "", false
	}

	atMillis, err := strconv.ParseInt(atRaw, 10, 64)
	if err != nil {
		_ = s.Clear()
		return "", false
	}

	establishedAt := time.UnixMilli(atMillis)
	if s.now().Sub(establishedAt) >= s.ttl {
		_ = s.Clear()
		return "", false
	}

	return token, true
}

// Established reports whether a live session exists. Reads the same
// state as Current; the legacy flag is written but never trusted, since
// it carries no timestamp.
func (s *Session) Established() bool {
	_, ok := s.Current()
	return ok
}

// ExpiresAt returns when the cached session lapses, if one exists.
func (s *Session) ExpiresAt() (time.Time, bool) {
	atRaw, ok := s.store.Get(EstablishedAtKey)
	if !ok {
		return time.Time{}, false
	}
	atMillis, err := strconv.ParseInt(atRaw, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(atMillis).Add(s.ttl), true
}

// Clear removes all session state, legacy flag included.
func (s *Session) Clear() error {
	if err := s.store.Delete(TokenKey); err != nil {
		return err
	}
	if err := s.store.Delete(EstablishedAtKey); err != nil {
		return err
	}
	return s.store.Delete(LegacyAuthKey)
}
