package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/services"
)

// SweepManager periodically evicts expired lockout entries from the
// in-memory rate limiter so long-gone origins do not pin memory.
type SweepManager struct {
	rateLimiter *services.RateLimitService
	logger      *slog.Logger
	interval    time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
}

// NewSweepManager creates a sweep manager with the given interval.
func NewSweepManager(rateLimiter *services.RateLimitService, logger *slog.Logger, interval time.Duration) *SweepManager {
	return &SweepManager{
		rateLimiter: rateLimiter,
		logger:      logger,
		interval:    interval,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
}

// Start runs the sweep loop until the context is cancelled or Stop is
// called. Blocks; run it in a goroutine.
func (m *SweepManager) Start(ctx context.Context) {
	defer close(m.doneCh)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.logger.Info("rate limit sweep started", slog.String("interval", m.interval.String()))

	for {
		select {
		case <-ticker.C:
			if removed := m.rateLimiter.SweepStale(); removed > 0 {
				m.logger.Info("swept stale lockout entries", slog.Int("removed", removed))
			}
		case <-ctx.Done():
			m.logger.Info("rate limit sweep stopped", slog.String("reason", "context cancelled"))
			return
		case <-m.stopCh:
			m.logger.Info("rate limit sweep stopped", slog.String("reason", "shutdown"))
			return
		}
	}
}

// Stop signals the sweep loop to exit and waits for it to finish.
func (m *SweepManager) Stop() {
	close(m.stopCh)
	<-m.doneCh
}
