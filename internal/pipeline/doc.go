// Package pipeline sequences the traffic reporting run: load the
// simulated dataset, aggregate per-period probabilities, render the
// chart, fill the HTML report, and print it to PDF.
//
// Stages share a single State value; each stage reads what its
// predecessors produced and writes its own output. The Runner executes
// stages in order and aborts on the first failure with one exception:
// a failed PDF export is recorded on the Result instead of aborting,
// because by that point the chart and the HTML report are already on
// disk and useful on their own.
//
//	state := pipeline.NewState(paths)
//	runner := pipeline.NewRunner(pipeline.DefaultStages(cfg, logger), logger)
//	result, err := runner.Run(ctx, state)
package pipeline
