package markov

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/K2AAM/Modeling-Traffic-with-Markov-Chains/internal/traffic"
)

// rowSumTolerance bounds how far a transition row may drift from summing
// to exactly 1 before the matrix is rejected
const rowSumTolerance = 1e-9

// Chain is a finite-state Markov chain over traffic states. Row i of the
// transition matrix holds the successor distribution of state i.
type Chain struct {
	states      []traffic.State
	transitions *mat.Dense
}

// NewChain builds a chain from an ordered state list and a row-stochastic
// transition matrix given as rows
func NewChain(states []traffic.State, rows [][]float64) (*Chain, error) {
	n := len(states)
	if n == 0 {
		return nil, fmt.Errorf("at least one state required")
	}
	if len(rows) != n {
		return nil, fmt.Errorf("transition matrix needs %d rows, got %d", n, len(rows))
	}

	flat := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("transition row %d needs %d entries, got %d", i, n, len(row))
		}

		sum := 0.0
		for j, p := range row {
			if math.IsNaN(p) || p < 0 || p > 1 {
				return nil, fmt.Errorf("transition [%d][%d] = %v is not a probability", i, j, p)
			}
			sum += p
		}
		if math.Abs(sum-1) > rowSumTolerance {
			return nil, fmt.Errorf("transition row %d (%s) sums to %v, want 1", i, states[i], sum)
		}

		flat = append(flat, row...)
	}

	ordered := make([]traffic.State, n)
	copy(ordered, states)

	return &Chain{
		states:      ordered,
		transitions: mat.NewDense(n, n, flat),
	}, nil
}

// DefaultChain returns the three-state model of a simulated traffic day:
// light traffic tends to persist, heavy traffic resolves or jams, and
// gridlock mostly feeds back into heavy traffic as it clears.
func DefaultChain() *Chain {
	chain, err := NewChain(traffic.KnownStates(), [][]float64{
		{0.70, 0.25, 0.05},
		{0.30, 0.50, 0.20},
		{0.10, 0.40, 0.50},
	})
	if err != nil {
		// The built-in matrix is checked by tests; reaching this is a bug.
		panic(fmt.Sprintf("default chain invalid: %v", err))
	}
	return chain
}

// States returns the chain's states in matrix order
func (c *Chain) States() []traffic.State {
	states := make([]traffic.State, len(c.states))
	copy(states, c.states)
	return states
}

// InitialDistribution returns the distribution with all mass on the given
// state
func (c *Chain) InitialDistribution(state traffic.State) ([]float64, error) {
	dist := make([]float64, len(c.states))
	for i, s := range c.states {
		if s == state {
			dist[i] = 1
			return dist, nil
		}
	}
	return nil, fmt.Errorf("state %q is not in the chain", state)
}

// Step advances a distribution by one transition and returns the result.
// The input distribution is not modified.
func (c *Chain) Step(dist []float64) ([]float64, error) {
	n := len(c.states)
	if len(dist) != n {
		return nil, fmt.Errorf("distribution needs %d entries, got %d", n, len(dist))
	}

	in := mat.NewVecDense(n, append([]float64(nil), dist...))
	out := mat.NewVecDense(n, nil)
	out.MulVec(c.transitions.T(), in)

	next := make([]float64, n)
	for i := range next {
		next[i] = out.AtVec(i)
	}
	return next, nil
}

// RunConfig configures a simulation run over a span of the day
type RunConfig struct {
	StartHour float64   // First sampled hour
	EndHour   float64   // Last sampled hour, inclusive
	StepHours float64   // Sampling resolution
	Initial   []float64 // Starting distribution; nil puts all mass on the first state
}

// Validate checks the run configuration against the chain
func (c *Chain) Validate(cfg RunConfig) error {
	if cfg.StepHours <= 0 {
		return fmt.Errorf("step must be positive, got %v", cfg.StepHours)
	}
	if cfg.EndHour < cfg.StartHour {
		return fmt.Errorf("end hour %v precedes start hour %v", cfg.EndHour, cfg.StartHour)
	}
	if cfg.Initial != nil {
		if len(cfg.Initial) != len(c.states) {
			return fmt.Errorf("initial distribution needs %d entries, got %d", len(c.states), len(cfg.Initial))
		}
		sum := 0.0
		for i, p := range cfg.Initial {
			if math.IsNaN(p) || p < 0 || p > 1 {
				return fmt.Errorf("initial[%d] = %v is not a probability", i, p)
			}
			sum += p
		}
		if math.Abs(sum-1) > rowSumTolerance {
			return fmt.Errorf("initial distribution sums to %v, want 1", sum)
		}
	}
	return nil
}

// Run evolves the chain from StartHour to EndHour inclusive at StepHours
// resolution, emitting one observation per state per sampled hour. The
// emitted probabilities at each hour are the state distribution before
// that hour's transition.
func (c *Chain) Run(cfg RunConfig) (traffic.Dataset, error) {
	if err := c.Validate(cfg); err != nil {
		return nil, err
	}

	dist := cfg.Initial
	if dist == nil {
		dist = make([]float64, len(c.states))
		dist[0] = 1
	} else {
		dist = append([]float64(nil), dist...)
	}

	// Tick count derived by rounding so accumulated float error in the
	// step size cannot drop the final sample.
	steps := int(math.Round((cfg.EndHour - cfg.StartHour) / cfg.StepHours))

	data := make(traffic.Dataset, 0, (steps+1)*len(c.states))
	for k := 0; k <= steps; k++ {
		hour := cfg.StartHour + float64(k)*cfg.StepHours
		for i, state := range c.states {
			data = append(data, traffic.Observation{
				Time:        hour,
				State:       state,
				Probability: dist[i],
			})
		}

		var err error
		dist, err = c.Step(dist)
		if err != nil {
			return nil, err
		}
	}

	return data, nil
}
