package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// DefaultResetAt is the day boundary at which daily missions return to pending
const DefaultResetAt = "00:00"

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	resetter  Resetter
	resetAt   string
	logger    *zap.Logger
}

// Resetter returns daily missions to pending and reports how many sessions it touched
type Resetter interface {
	ResetDailyMissions() int
}

// New creates a new scheduler instance running in UTC
func New(resetter Resetter, resetAt string, logger *zap.Logger) *Scheduler {
	if resetAt == "" {
		resetAt = DefaultResetAt
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		resetter:  resetter,
		resetAt:   resetAt,
		logger:    logger,
	}
}

// Start registers the daily reset job and starts the scheduler without blocking
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(1).Day().At(s.resetAt).Do(s.resetDaily); err != nil {
		return fmt.Errorf("failed to schedule daily reset at %s: %w", s.resetAt, err)
	}
	s.scheduler.StartAsync()
	s.logger.Info("scheduler started", zap.String("daily_reset_at", s.resetAt))
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// NextReset reports when the daily reset will run next
func (s *Scheduler) NextReset() time.Time {
	_, next := s.scheduler.NextRun()
	return next
}

// RunManualReset forces a daily reset
func (s *Scheduler) RunManualReset() int {
	return s.resetDaily()
}

func (s *Scheduler) resetDaily() int {
	n := s.resetter.ResetDailyMissions()
	s.logger.Info("daily missions reset", zap.Int("sessions", n))
	return n
}
