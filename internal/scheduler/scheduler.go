// Package scheduler runs the watch-mode refresh loop: a cron job that
// periodically refetches the dashboard panels of every watch-enabled
// workspace.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/adirathodd/cs-490-project-sub009/pkg/logger"
)

// WatchRefresher is the slice of the dashboard service the scheduler drives.
type WatchRefresher interface {
	RefreshWatched(ctx context.Context)
}

// Scheduler wraps robfig/cron around the watch refresh tick.
type Scheduler struct {
	cron      *cron.Cron
	refresher WatchRefresher
	logger    *logger.Logger
	spec      string // cron spec, e.g. "@every 30s"
}

// New creates a Scheduler that ticks every interval.
func New(refresher WatchRefresher, interval time.Duration, logger *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		refresher: refresher,
		logger:    logger,
		spec:      fmt.Sprintf("@every %s", interval),
	}
}

// Start registers the job and starts the loop. There is no immediate tick:
// panels load when a workspace opens, the timer only keeps them fresh.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.refresher.RefreshWatched(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logger.WithField("spec", s.spec).Info("Watch refresh scheduler started")
	return nil
}

// Stop shuts the loop down and waits for a tick still in flight.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Watch refresh scheduler stopped")
}
