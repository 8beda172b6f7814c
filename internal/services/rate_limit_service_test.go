package services

import (
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter() *RateLimitService {
	return NewRateLimitService(DefaultRateLimitConfig(), slog.Default())
}

func TestRateLimit_AllowsUpToCap(t *testing.T) {
	limiter := newTestLimiter()

	for i := 1; i <= 5; i++ {
		assert.True(t, limiter.Allow("203.0.113.7"), "attempt %d should be allowed", i)
	}
	assert.False(t, limiter.Allow("203.0.113.7"), "6th attempt should be refused")
	assert.False(t, limiter.Allow("203.0.113.7"), "7th attempt should be refused")
}

func TestRateLimit_OriginsAreIndependent(t *testing.T) {
	limiter := newTestLimiter()

	for i := 0; i < 5; i++ {
		limiter.Allow("203.0.113.7")
	}
	assert.False(t, limiter.Allow("203.0.113.7"))
	assert.True(t, limiter.Allow("198.51.100.1"), "a different origin has its own budget")
}

func TestRateLimit_ClearResetsBudget(t *testing.T) {
	limiter := newTestLimiter()

	for i := 0; i < 5; i++ {
		limiter.Allow("203.0.113.7")
	}
	assert.False(t, limiter.Allow("203.0.113.7"))

	limiter.Clear("203.0.113.7")

	for i := 1; i <= 5; i++ {
		assert.True(t, limiter.Allow("203.0.113.7"), "attempt %d after clear should be allowed", i)
	}
	assert.False(t, limiter.Allow("203.0.113.7"))
}

func TestRateLimit_WindowElapseResets(t *testing.T) {
	limiter := newTestLimiter()

	current := time.Now()
	limiter.now = func() time.Time { return current }

	for i := 0; i < 5; i++ {
		limiter.Allow("203.0.113.7")
	}
	assert.False(t, limiter.Allow("203.0.113.7"))

	// Just past the 15-minute window the record counts as fresh.
	current = current.Add(15*time.Minute + time.Second)
	assert.True(t, limiter.Allow("203.0.113.7"))

	// The reset started a new window with count 1.
	for i := 0; i < 4; i++ {
		assert.True(t, limiter.Allow("203.0.113.7"))
	}
	assert.False(t, limiter.Allow("203.0.113.7"))
}

func TestRateLimit_RefusalDoesNotExtendWindow(t *testing.T) {
	limiter := newTestLimiter()

	current := time.Now()
	limiter.now = func() time.Time { return current }

	for i := 0; i < 5; i++ {
		limiter.Allow("203.0.113.7")
	}

	// Refused attempts must not touch LastAttemptAt, otherwise a
	// persistent attacker keeps the window open forever.
	current = current.Add(10 * time.Minute)
	assert.False(t, limiter.Allow("203.0.113.7"))

	current = current.Add(5*time.Minute + time.Second)
	assert.True(t, limiter.Allow("203.0.113.7"))
}

func TestRateLimit_SweepStale(t *testing.T) {
	limiter := newTestLimiter()

	current := time.Now()
	limiter.now = func() time.Time { return current }

	limiter.Allow("203.0.113.7")
	limiter.Allow("198.51.100.1")

	current = current.Add(16 * time.Minute)
	limiter.Allow("192.0.2.9")

	removed := limiter.SweepStale()
	assert.Equal(t, 2, removed)

	// The surviving record still counts.
	for i := 0; i < 4; i++ {
		limiter.Allow("192.0.2.9")
	}
	assert.False(t, limiter.Allow("192.0.2.9"))
}

func TestRateLimit_ConcurrentAttempts(t *testing.T) {
	limiter := newTestLimiter()

	var wg sync.WaitGroup
	allowed := make(chan bool, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			allowed <- limiter.Allow(fmt.Sprintf("origin-%d", n%4))
		}(i)
	}
	wg.Wait()
	close(allowed)

	count := 0
	for ok := range allowed {
		if ok {
			count++
		}
	}
	// 4 origins, 5 attempts each.
	assert.Equal(t, 20, count)
}
