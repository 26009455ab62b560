package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/K2AAM/Modeling-Traffic-with-Markov-Chains/internal/errors"
	"github.com/K2AAM/Modeling-Traffic-with-Markov-Chains/internal/infrastructure"
)

// Runner executes pipeline stages in order
type Runner struct {
	stages []Stage
	logger *slog.Logger
}

// NewRunner creates a runner for the given stages
func NewRunner(stages []Stage, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{stages: stages, logger: logger}
}

// Run executes every stage against the shared state. The first failure
// aborts the run, except export failures: those are recorded on the
// result and the run still completes, since the HTML report and chart
// already exist and remain usable without the PDF.
func (r *Runner) Run(ctx context.Context, state *State) (*Result, error) {
	result := &Result{RunID: infrastructure.GetRunID(ctx)}
	start := time.Now()

	r.logger.InfoContext(ctx, "starting pipeline",
		"stages", len(r.stages),
		"input", state.Paths.InputCSV,
	)

	for _, stage := range r.stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		stageStart := time.Now()
		r.logger.InfoContext(ctx, "stage started",
			"stage", stage.ID(),
			"name", stage.Name(),
		)

		if err := stage.Run(ctx, state); err != nil {
			if errors.IsType(err, errors.ErrTypeExport) {
				result.ExportErr = err
				r.logger.WarnContext(ctx, "stage failed, continuing without PDF",
					"stage", stage.ID(),
					"error", err.Error(),
				)
				continue
			}

			r.logger.ErrorContext(ctx, "stage failed",
				"stage", stage.ID(),
				"duration", time.Since(stageStart).String(),
				"error", err.Error(),
			)
			return nil, err
		}

		r.logger.InfoContext(ctx, "stage completed",
			"stage", stage.ID(),
			"duration", time.Since(stageStart).String(),
		)
	}

	result.Duration = time.Since(start)
	r.logger.InfoContext(ctx, "pipeline completed",
		"duration", result.Duration.String(),
		"pdf_exported", result.ExportErr == nil,
	)

	return result, nil
}
