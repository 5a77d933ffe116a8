// Package server runs sweeps on a schedule.
package server

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sweeparr/sweeparr/internal/library"
	"github.com/sweeparr/sweeparr/internal/sweep"
)

// Sweeper is the part of sweep.Runner the scheduler needs.
type Sweeper interface {
	Run(ctx context.Context, defs []library.Definition) (*sweep.Result, error)
}

var _ Sweeper = (*sweep.Runner)(nil)

// Config for the scheduled runner.
type Config struct {
	Interval  time.Duration
	Libraries []library.Definition
}

// Runner re-runs the sweep on a fixed interval.
type Runner struct {
	sweeper Sweeper
	config  Config
	logger  *slog.Logger
}

// NewRunner creates a scheduled runner.
func NewRunner(sweeper Sweeper, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		sweeper: sweeper,
		config:  cfg,
		logger:  logger.With("component", "server"),
	}
}

// Run sweeps immediately, then once per interval.
// It blocks until the context is canceled.
func (r *Runner) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.loop(ctx)
	})
	return g.Wait()
}

func (r *Runner) loop(ctx context.Context) error {
	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	r.logger.Info("scheduler started", "interval", r.config.Interval.String())
	r.sweepOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			r.sweepOnce(ctx)
		}
	}
}

// sweepOnce runs one sweep. Failures are logged and the schedule keeps
// going.
func (r *Runner) sweepOnce(ctx context.Context) {
	result, err := r.sweeper.Run(ctx, r.config.Libraries)
	if err != nil {
		r.logger.Error("run failed", "error", err)
		return
	}
	if result.Failed > 0 {
		r.logger.Warn("run completed with failures",
			"successful", result.Successful,
			"failed", result.Failed)
	}
}
