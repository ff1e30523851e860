// Package pipeline provides a minimal named-stage runner for the batch
// processing flow: stages run sequentially, each timed and logged, and the
// first failing stage aborts the run with its error wrapped.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Stage is one named step of the run.
type Stage struct {
	Name string
	Run  func(ctx context.Context) error
}

// Runner executes stages in order.
type Runner struct {
	logger *slog.Logger
	stages []Stage
}

// NewRunner creates a runner over the given stages.
func NewRunner(logger *slog.Logger, stages ...Stage) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger, stages: stages}
}

// Run executes every stage sequentially. Context cancellation is checked
// between stages; a stage error stops the run immediately.
func (r *Runner) Run(ctx context.Context) error {
	start := time.Now()
	for _, stage := range r.stages {
		if err := ctx.Err(); err != nil {
			return err
		}

		stageStart := time.Now()
		r.logger.InfoContext(ctx, "stage started", slog.String("stage", stage.Name))

		if err := stage.Run(ctx); err != nil {
			r.logger.ErrorContext(ctx, "stage failed",
				slog.String("stage", stage.Name),
				slog.Duration("elapsed", time.Since(stageStart)),
				slog.String("error", err.Error()))
			return fmt.Errorf("stage %s: %w", stage.Name, err)
		}

		r.logger.InfoContext(ctx, "stage completed",
			slog.String("stage", stage.Name),
			slog.Duration("elapsed", time.Since(stageStart)))
	}

	r.logger.InfoContext(ctx, "run completed",
		slog.Int("stages", len(r.stages)),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}
