package services

import (
	"log/slog"
	"sync"
	"time"

	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/models"
)

// RateLimitConfig holds login rate limiting behavior.
type RateLimitConfig struct {
	MaxAttempts int           // attempts allowed inside one window
	Window      time.Duration // fixed lockout window
}

// DefaultRateLimitConfig returns the standard login limits: 5 attempts
// per origin per 15-minute window.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxAttempts: 5,
		Window:      15 * time.Minute,
	}
}

// RateLimitService bounds login attempts per client origin. State is
// process-local; a multi-instance deployment needs a shared store for
// the limit to hold globally.
type RateLimitService struct {
	mu       sync.Mutex
	attempts map[string]*models.LoginAttempt
	config   RateLimitConfig
	logger   *slog.Logger

	now func() time.Time
}

// NewRateLimitService creates a RateLimitService with its own attempt table.
func NewRateLimitService(config RateLimitConfig, logger *slog.Logger) *RateLimitService {
	return &RateLimitService{
		attempts: make(map[string]*models.LoginAttempt),
		config:   config,
		logger:   logger,
		now:      time.Now,
	}
}

// Allow records a login attempt from origin and reports whether it may
// proceed. A record older than the window counts as fresh. Once the
// attempt count reaches the cap, further attempts are refused without
// incrementing until the window elapses.
func (s *RateLimitService) Allow(origin string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	record, ok := s.attempts[origin]
	if !ok || now.Sub(record.LastAttemptAt) > s.config.Window {
		s.attempts[origin] = &models.LoginAttempt{
			Origin:        origin,
			Count:         1,
			LastAttemptAt: now,
		}
		return true
	}

	if record.Count >= s.config.MaxAttempts {
		s.logger.Warn("login rate limit tripped",
			slog.String("origin", origin),
			slog.Int("attempts", record.Count),
		)
		return false
	}

	record.Count++
	record.LastAttemptAt = now
	return true
}

// Clear drops the attempt record for origin, called after a successful
// login so earlier failures stop counting against the admin.
func (s *RateLimitService) Clear(origin string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attempts, origin)
}

// SweepStale evicts records old enough to be logically reset anyway.
// Purely memory hygiene; observable behavior is unchanged.
func (s *RateLimitService) SweepStale() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for origin, record := range s.attempts {
		if now.Sub(record.LastAttemptAt) > s.config.Window {
			delete(s.attempts, origin)
			removed++
		}
	}
	return removed
}
