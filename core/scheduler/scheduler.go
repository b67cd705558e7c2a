package scheduler

import (
	"context"
	"fmt"
	"time"

	"catalog-mirror/core/logger"
	"catalog-mirror/core/reconcile"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Runner runs reconciliation passes per family.
type Runner interface {
	Families() []string
	SupportsIncremental(family string) bool
	FullSync(ctx context.Context, family string) (*reconcile.DiffResult, error)
	IncrementalSync(ctx context.Context, family string) (*reconcile.IncrementalResult, error)
}

// Scheduler triggers full and incremental passes on fixed intervals.
type Scheduler struct {
	runner Runner
	cfg    Config
	logger *zap.Logger
}

// New creates a scheduler.
func New(runner Runner, cfg Config, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{runner: runner, cfg: cfg, logger: log}
}

// Run blocks until ctx is cancelled. Full and incremental passes tick independently; a
// failed pass is logged and the family is tried again on the next tick.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.cfg.RunOnStart {
		_ = s.FullAll(ctx)
	}

	var g errgroup.Group
	g.Go(func() error {
		<-ctx.Done()
		return nil
	})
	if s.cfg.FullInterval > 0 {
		g.Go(func() error {
			s.loop(ctx, s.cfg.FullInterval, s.FullAll)
			return nil
		})
	}
	if s.cfg.IncrementalInterval > 0 {
		g.Go(func() error {
			s.loop(ctx, s.cfg.IncrementalInterval, s.IncrementalAll)
			return nil
		})
	}

	s.logger.Info("Scheduler started",
		zap.Duration("full_interval", s.cfg.FullInterval),
		zap.Duration("incremental_interval", s.cfg.IncrementalInterval),
	)
	err := g.Wait()
	s.logger.Info("Scheduler stopped")
	return err
}

func (s *Scheduler) loop(ctx context.Context, interval time.Duration, tick func(context.Context) error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = tick(ctx)
		}
	}
}

// FullAll runs a full pass of every family concurrently and returns the first failure.
func (s *Scheduler) FullAll(ctx context.Context) error {
	return s.each(ctx, s.runner.Families(), func(ctx context.Context, family string) error {
		_, err := s.runner.FullSync(ctx, family)
		return err
	})
}

// IncrementalAll runs an incremental pass of every family that supports one.
func (s *Scheduler) IncrementalAll(ctx context.Context) error {
	var families []string
	for _, family := range s.runner.Families() {
		if s.runner.SupportsIncremental(family) {
			families = append(families, family)
		}
	}
	return s.each(ctx, families, func(ctx context.Context, family string) error {
		_, err := s.runner.IncrementalSync(ctx, family)
		return err
	})
}

// each runs fn for every family in parallel. Families are independent, so one failure
// does not cancel the others.
func (s *Scheduler) each(ctx context.Context, families []string, fn func(context.Context, string) error) error {
	var g errgroup.Group
	for _, family := range families {
		g.Go(func() error {
			if err := fn(ctx, family); err != nil {
				logger.ForFamily(s.logger, family).Error("Scheduled pass failed", zap.Error(err))
				return fmt.Errorf("%s: %w", family, err)
			}
			return nil
		})
	}
	return g.Wait()
}
