// ABOUTME: Background jobs run alongside the API server.
// ABOUTME: Periodically stamps completion on journeys that reached their final day.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/harperreed/recomp/internal/logging"
)

// DefaultInterval is how often finished journeys are swept.
const DefaultInterval = time.Hour

// runTimeout bounds one sweep.
const runTimeout = 2 * time.Minute

// Completer marks finished journeys completed and reports how many changed.
type Completer interface {
	CompleteFinished(ctx context.Context) (int, error)
}

// Scheduler runs the journey completion sweep on an interval.
type Scheduler struct {
	s gocron.Scheduler
}

// Start schedules the sweep every interval, running it once immediately.
func Start(c Completer, interval time.Duration) (*Scheduler, error) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { _, _ = Sweep(context.Background(), c) }),
		gocron.WithName("complete-journeys"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("schedule journey sweep: %w", err)
	}

	s.Start()
	logging.Info("scheduler started", "job", "complete-journeys", "interval", interval)
	return &Scheduler{s: s}, nil
}

// Stop waits for a running sweep and stops the scheduler.
func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

// Sweep runs one completion pass.
func Sweep(ctx context.Context, c Completer) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	n, err := c.CompleteFinished(ctx)
	if err != nil {
		logging.Error("journey sweep failed", "error", err)
		return 0, err
	}
	if n > 0 {
		logging.Info("journeys completed", "count", n)
	}
	return n, nil
}
