package traffic

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/K2AAM/Modeling-Traffic-with-Markov-Chains/internal/errors"
)

// Aggregator computes per-period mean state probabilities from a dataset.
// It is a pure computation over its inputs: the dataset is never mutated
// and repeated calls over the same data produce identical results.
type Aggregator struct {
	periods []Period
	logger  *slog.Logger
}

// NewAggregator creates an aggregator over the given periods. A nil or
// empty period list falls back to DefaultPeriods.
func NewAggregator(periods []Period, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	if len(periods) == 0 {
		periods = DefaultPeriods()
	}

	return &Aggregator{
		periods: periods,
		logger:  logger,
	}
}

// Periods returns the periods this aggregator computes over
func (a *Aggregator) Periods() []Period {
	return a.periods
}

// Aggregate computes the mean probability per state within each period.
//
// Period membership uses each period's own boundary rule, so overlapping
// periods count shared observations in both. States with no observations
// inside a period get no entry; a period with no observations at all maps
// to an empty PeriodMeans. An empty dataset is not an error.
func (a *Aggregator) Aggregate(ctx context.Context, data Dataset) (AggregateResult, error) {
	start := time.Now()

	a.logger.InfoContext(ctx, "starting period aggregation",
		"observations", len(data),
		"periods", len(a.periods),
	)

	if err := a.validateInputs(data); err != nil {
		a.logger.ErrorContext(ctx, "input validation failed", "error", err)
		return nil, err
	}

	result := make(AggregateResult, len(a.periods))

	for _, period := range a.periods {
		sums := make(map[State]float64)
		counts := make(map[State]int)

		for _, obs := range data {
			if !period.Contains(obs.Time) {
				continue
			}
			sums[obs.State] += obs.Probability
			counts[obs.State]++
		}

		means := make(PeriodMeans, len(counts))
		for state, count := range counts {
			means[state] = sums[state] / float64(count)
		}
		result[period.Name] = means
	}

	a.logger.InfoContext(ctx, "period aggregation completed",
		"duration", time.Since(start),
		"periods", len(result),
	)

	return result, nil
}

// validateInputs rejects observations whose probability is not a finite
// number. Such values would poison every mean they contribute to, so the
// error names the offending row instead of letting NaN propagate.
func (a *Aggregator) validateInputs(data Dataset) error {
	for i, obs := range data {
		if !isFinite(obs.Probability) {
			return errors.NewDataFormatError(
				fmt.Sprintf("observation %d: probability is not a finite number", i+1), nil).
				WithContext("row", i+1).
				WithContext("state", string(obs.State))
		}
	}
	return nil
}
