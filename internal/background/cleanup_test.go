package background_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/background"
	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/services"
)

func newTestManager(interval time.Duration) *background.SweepManager {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter := services.NewRateLimitService(services.DefaultRateLimitConfig(), logger)
	return background.NewSweepManager(limiter, logger, interval)
}

func TestSweepManager_StopTerminatesLoop(t *testing.T) {
	manager := newTestManager(10 * time.Millisecond)

	go manager.Start(context.Background())
	time.Sleep(30 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		manager.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not terminate the sweep loop")
	}
}

func TestSweepManager_ContextCancelTerminatesLoop(t *testing.T) {
	manager := newTestManager(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		manager.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("context cancellation did not terminate the sweep loop")
	}
}
