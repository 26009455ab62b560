package pipeline

import (
	"context"
	"time"

	"github.com/K2AAM/Modeling-Traffic-with-Markov-Chains/internal/config"
	"github.com/K2AAM/Modeling-Traffic-with-Markov-Chains/internal/traffic"
)

// Stage represents a single step of the reporting pipeline
type Stage interface {
	// ID returns the unique identifier for this stage
	ID() string

	// Name returns the human-readable name for this stage
	Name() string

	// Run executes the stage against the shared run state
	Run(ctx context.Context, state *State) error
}

// State carries the artifacts produced by earlier stages to later ones.
// Stages read the fields their predecessors filled and write their own.
type State struct {
	Paths       config.ArtifactPaths
	GeneratedAt time.Time

	Dataset traffic.Dataset
	Result  traffic.AggregateResult
}

// NewState creates a run state for the given artifact locations
func NewState(paths config.ArtifactPaths) *State {
	return &State{
		Paths:       paths,
		GeneratedAt: time.Now(),
	}
}

// Result summarizes a completed pipeline run
type Result struct {
	RunID    string
	Duration time.Duration

	// ExportErr is set when the PDF export stage failed. The run still
	// counts as completed: the chart and HTML report are intact.
	ExportErr error
}
