package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-trip-planner/internal/logger"
)

// Refresher refetches weather for trips that have not ended yet.
type Refresher interface {
	RefreshUpcoming(ctx context.Context, now time.Time) (int, error)
}

// Scheduler periodically refreshes the stored weather of upcoming trips.
type Scheduler struct {
	scheduler *gocron.Scheduler
	refresher Refresher
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler.
func New(interval time.Duration, refresher Refresher) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		refresher: refresher,
		interval:  interval,
		timeout:   5 * time.Minute,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run happens one interval after start.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().WaitForSchedule().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) run() {
	logger.Info("scheduler: refreshing weather for upcoming trips")

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.refresher.RefreshUpcoming(ctx, time.Now())
	if err != nil {
		logger.Error(fmt.Errorf("scheduler: refresh failed: %w", err))
		return
	}
	logger.Infof("scheduler: refreshed %d trips", n)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
