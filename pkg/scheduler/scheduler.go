// Package scheduler runs periodic maintenance jobs on gocron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// Scheduler owns one gocron scheduler
type Scheduler struct {
	s      gocron.Scheduler
	logger *zap.Logger
}

// New creates a scheduler in UTC
func New(logger *zap.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("init scheduler: %w", err)
	}
	return &Scheduler{s: s, logger: logger}, nil
}

// Every registers fn to run every interval; overlapping runs are skipped
func (sc *Scheduler) Every(name string, interval time.Duration, fn func(ctx context.Context) error) error {
	_, err := sc.s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()
			start := time.Now()
			if err := fn(ctx); err != nil {
				sc.logger.Error("job failed", zap.String("job", name), zap.Error(err))
				return
			}
			sc.logger.Info("job finished",
				zap.String("job", name),
				zap.Duration("took", time.Since(start)),
			)
		}),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("register job %s: %w", name, err)
	}
	sc.logger.Info("job registered", zap.String("job", name), zap.Duration("interval", interval))
	return nil
}

// Start begins running jobs
func (sc *Scheduler) Start() {
	sc.s.Start()
}

// Shutdown stops jobs and waits for running ones
func (sc *Scheduler) Shutdown() error {
	return sc.s.Shutdown()
}

// Jobs number of registered jobs
func (sc *Scheduler) Jobs() int {
	return len(sc.s.Jobs())
}
