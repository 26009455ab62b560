// Package traffic implements the domain model and aggregation logic for
// the Markov-chain traffic simulation report.
//
// The simulation produces a time series of state probabilities over a
// simulated day: at each sampled hour, the probability of traffic being
// Light, Heavy or Gridlock. This package loads that series from CSV and
// reduces it to per-period mean probabilities, which the report layer
// renders.
//
// # Architecture
//
//   - types.go: State, Observation, Dataset, Period and AggregateResult
//   - loader.go: CSV parsing with strict per-row error reporting
//   - aggregate.go: the period-mean computation
//
// # Day Partition
//
// The default partition splits the simulated day into three periods:
//
//	Early     [8, 16)   morning through afternoon
//	RushHour  [16, 18)  the evening rush
//	Late      [18, 20]  evening, upper bound included
//
// Late's closed upper bound is deliberate: the established report counts
// an observation at exactly 20:00, and changing that would silently shift
// its numbers. Periods are not required to tile the day or to be
// disjoint; an observation in two overlapping periods counts in both.
//
// # Usage
//
//	data, err := traffic.LoadCSV("traffic_simulation.csv")
//	if err != nil {
//	    return err
//	}
//
//	agg := traffic.NewAggregator(traffic.DefaultPeriods(), logger)
//	result, err := agg.Aggregate(ctx, data)
//	if err != nil {
//	    return err
//	}
//
//	// Absent entries read as zero, matching the report's empty cells.
//	early := result.Mean(traffic.PeriodEarly, traffic.StateLight)
//
// # Error Handling
//
// The loader fails the whole read on the first malformed row rather than
// skipping it, and names the 1-based data row in the error. The
// aggregator applies the same policy to non-finite probabilities that
// reach it. A dataset with no rows at all is valid and aggregates to
// empty means for every period.
package traffic
