package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DefaultPurgeSchedule runs the revocation purge once an hour.
const DefaultPurgeSchedule = "@hourly"

const purgeTimeout = 30 * time.Second

// ExpiredTokenPurger removes revocation entries whose tokens have expired.
type ExpiredTokenPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Scheduler runs periodic maintenance jobs.
type Scheduler struct {
	cron *cron.Cron
	log  logrus.FieldLogger
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(log logrus.FieldLogger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		log:  log.WithField("component", "scheduler"),
	}
}

// AddRevocationPurge schedules purger on schedule (standard cron syntax or a
// descriptor such as @hourly).
func (s *Scheduler) AddRevocationPurge(schedule string, purger ExpiredTokenPurger) error {
	_, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
		defer cancel()
		PurgeRevokedTokens(ctx, purger, s.log)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule revocation purge %q: %w", schedule, err)
	}
	return nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.WithField("jobs", len(s.cron.Entries())).Info("scheduler started")
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// PurgeRevokedTokens runs a single purge and logs the outcome.
func PurgeRevokedTokens(ctx context.Context, purger ExpiredTokenPurger, log logrus.FieldLogger) int64 {
	n, err := purger.PurgeExpired(ctx)
	if err != nil {
		log.WithError(err).Error("failed to purge expired revocations")
		return 0
	}
	if n > 0 {
		log.WithField("purged", n).Info("purged expired revocations")
	}
	return n
}
