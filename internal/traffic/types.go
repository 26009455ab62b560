package traffic

import "math"

// State represents a traffic congestion state observed in the simulation
type State string

const (
	// StateLight represents free-flowing traffic
	StateLight State = "Light"
	// StateHeavy represents congested but moving traffic
	StateHeavy State = "Heavy"
	// StateGridlock represents stopped traffic
	StateGridlock State = "Gridlock"
)

// KnownStates returns the canonical states in display order.
// The loader and aggregator accept any state label; this order is used
// where a fixed layout is needed, such as the report cells.
func KnownStates() []State {
	return []State{StateLight, StateHeavy, StateGridlock}
}

// Observation is a single simulated data point: the probability of being
// in a given state at a given time of day
type Observation struct {
	Time        float64 `json:"time"`        // Hour of day, fractional hours allowed
	State       State   `json:"state"`       // State label, not restricted to the known set
	Probability float64 `json:"probability"` // Expected in [0,1], not enforced
}

// IsValid checks that the observation's numeric fields are finite
func (o Observation) IsValid() bool {
	return isFinite(o.Time) && isFinite(o.Probability)
}

// Dataset is the ordered sequence of observations from one simulation run.
// It is loaded once and treated as read-only afterwards.
type Dataset []Observation

// States returns the distinct state labels in first-appearance order
func (d Dataset) States() []State {
	seen := make(map[State]bool, 4)
	var states []State
	for _, obs := range d {
		if !seen[obs.State] {
			seen[obs.State] = true
			states = append(states, obs.State)
		}
	}
	return states
}

// Period represents a named interval of the simulated day
type Period struct {
	Name      string  `json:"name"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	ClosedEnd bool    `json:"closed_end"` // Whether End itself belongs to the period
}

// Period names used by the default day partition
const (
	PeriodEarly    = "Early"
	PeriodRushHour = "RushHour"
	PeriodLate     = "Late"
)

// Contains reports whether the given hour falls inside the period.
// The lower bound is always inclusive; the upper bound is inclusive only
// when ClosedEnd is set.
func (p Period) Contains(t float64) bool {
	if t < p.Start {
		return false
	}
	if p.ClosedEnd {
		return t <= p.End
	}
	return t < p.End
}

// DefaultPeriods returns the standard partition of the simulated day.
// Late keeps its closed upper bound so an observation at exactly 20:00
// is counted, matching the established report output.
func DefaultPeriods() []Period {
	return []Period{
		{Name: PeriodEarly, Start: 8, End: 16},
		{Name: PeriodRushHour, Start: 16, End: 18},
		{Name: PeriodLate, Start: 18, End: 20, ClosedEnd: true},
	}
}

// PeriodMeans maps a state to its mean probability within one period.
// States with no observations in the period are absent.
type PeriodMeans map[State]float64

// AggregateResult maps each period name to its per-state means. Every
// configured period is present as a key even when no observations fell
// inside it.
type AggregateResult map[string]PeriodMeans

// Mean returns the mean probability for the given period and state,
// or 0 when either the period or the state has no entry
func (r AggregateResult) Mean(period string, state State) float64 {
	means, ok := r[period]
	if !ok {
		return 0
	}
	return means[state]
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
