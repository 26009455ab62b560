package markov

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/K2AAM/Modeling-Traffic-with-Markov-Chains/internal/traffic"
)

func twoStateChain(t *testing.T) *Chain {
	t.Helper()
	chain, err := NewChain([]traffic.State{"A", "B"}, [][]float64{
		{0.9, 0.1},
		{0.4, 0.6},
	})
	require.NoError(t, err)
	return chain
}

func TestNewChain(t *testing.T) {
	tests := []struct {
		name    string
		states  []traffic.State
		rows    [][]float64
		wantErr string
	}{
		{
			name:   "valid two state chain",
			states: []traffic.State{"A", "B"},
			rows:   [][]float64{{0.9, 0.1}, {0.4, 0.6}},
		},
		{
			name:    "no states",
			states:  nil,
			rows:    nil,
			wantErr: "at least one state",
		},
		{
			name:    "row count mismatch",
			states:  []traffic.State{"A", "B"},
			rows:    [][]float64{{1}},
			wantErr: "needs 2 rows",
		},
		{
			name:    "row width mismatch",
			states:  []traffic.State{"A", "B"},
			rows:    [][]float64{{0.9, 0.1}, {1}},
			wantErr: "row 1 needs 2 entries",
		},
		{
			name:    "negative probability",
			states:  []traffic.State{"A", "B"},
			rows:    [][]float64{{1.1, -0.1}, {0.5, 0.5}},
			wantErr: "not a probability",
		},
		{
			name:    "row does not sum to one",
			states:  []traffic.State{"A", "B"},
			rows:    [][]float64{{0.9, 0.2}, {0.5, 0.5}},
			wantErr: "row 0 (A) sums to",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain, err := NewChain(tt.states, tt.rows)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.NotNil(t, chain)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestDefaultChain(t *testing.T) {
	chain := DefaultChain()
	assert.Equal(t, traffic.KnownStates(), chain.States())
}

func TestChain_Step(t *testing.T) {
	chain := twoStateChain(t)

	t.Run("advances distribution by one transition", func(t *testing.T) {
		next, err := chain.Step([]float64{1, 0})
		require.NoError(t, err)

		// From pure A, one step lands on row A of the matrix.
		assert.InDelta(t, 0.9, next[0], 1e-12)
		assert.InDelta(t, 0.1, next[1], 1e-12)
	})

	t.Run("mixes distributions linearly", func(t *testing.T) {
		next, err := chain.Step([]float64{0.5, 0.5})
		require.NoError(t, err)

		assert.InDelta(t, 0.5*0.9+0.5*0.4, next[0], 1e-12)
		assert.InDelta(t, 0.5*0.1+0.5*0.6, next[1], 1e-12)
	})

	t.Run("preserves total probability mass", func(t *testing.T) {
		dist := []float64{0.2, 0.8}
		for i := 0; i < 50; i++ {
			var err error
			dist, err = chain.Step(dist)
			require.NoError(t, err)

			sum := dist[0] + dist[1]
			assert.InDelta(t, 1.0, sum, 1e-9, "mass lost after %d steps", i+1)
		}
	})

	t.Run("does not modify the input", func(t *testing.T) {
		dist := []float64{0.3, 0.7}
		_, err := chain.Step(dist)
		require.NoError(t, err)
		assert.Equal(t, []float64{0.3, 0.7}, dist)
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		_, err := chain.Step([]float64{1})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "needs 2 entries")
	})
}

func TestChain_InitialDistribution(t *testing.T) {
	chain := DefaultChain()

	dist, err := chain.InitialDistribution(traffic.StateHeavy)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 0}, dist)

	_, err = chain.InitialDistribution("Unknown")
	require.Error(t, err)
}

func TestChain_Run(t *testing.T) {
	chain := DefaultChain()

	t.Run("emits one observation per state per tick", func(t *testing.T) {
		data, err := chain.Run(RunConfig{StartHour: 8, EndHour: 20, StepHours: 0.5})
		require.NoError(t, err)

		// 25 ticks from 8.0 to 20.0 inclusive, 3 states each.
		assert.Len(t, data, 25*3)
		assert.Equal(t, 8.0, data[0].Time)
		assert.Equal(t, 20.0, data[len(data)-1].Time)
	})

	t.Run("starts from all mass on the first state by default", func(t *testing.T) {
		data, err := chain.Run(RunConfig{StartHour: 8, EndHour: 9, StepHours: 1})
		require.NoError(t, err)
		require.Len(t, data, 6)

		assert.Equal(t, traffic.StateLight, data[0].State)
		assert.Equal(t, 1.0, data[0].Probability)
		assert.Equal(t, 0.0, data[1].Probability)
		assert.Equal(t, 0.0, data[2].Probability)
	})

	t.Run("per-hour probabilities sum to one", func(t *testing.T) {
		data, err := chain.Run(RunConfig{StartHour: 8, EndHour: 20, StepHours: 0.5})
		require.NoError(t, err)

		byHour := make(map[float64]float64)
		for _, obs := range data {
			byHour[obs.Time] += obs.Probability
		}
		require.Len(t, byHour, 25)
		for hour, sum := range byHour {
			assert.InDelta(t, 1.0, sum, 1e-9, "hour %v", hour)
		}
	})

	t.Run("honors an explicit initial distribution", func(t *testing.T) {
		data, err := chain.Run(RunConfig{
			StartHour: 8,
			EndHour:   8,
			StepHours: 1,
			Initial:   []float64{0, 0, 1},
		})
		require.NoError(t, err)
		require.Len(t, data, 3)
		assert.Equal(t, 1.0, data[2].Probability)
	})

	t.Run("rejects bad configs", func(t *testing.T) {
		_, err := chain.Run(RunConfig{StartHour: 8, EndHour: 20, StepHours: 0})
		assert.Error(t, err)

		_, err = chain.Run(RunConfig{StartHour: 20, EndHour: 8, StepHours: 1})
		assert.Error(t, err)

		_, err = chain.Run(RunConfig{StartHour: 8, EndHour: 20, StepHours: 1, Initial: []float64{1}})
		assert.Error(t, err)

		_, err = chain.Run(RunConfig{StartHour: 8, EndHour: 20, StepHours: 1, Initial: []float64{0.5, 0.2, 0.1}})
		assert.Error(t, err)
	})

	t.Run("aggregates cleanly downstream", func(t *testing.T) {
		data, err := chain.Run(RunConfig{StartHour: 8, EndHour: 20, StepHours: 0.5})
		require.NoError(t, err)

		agg := traffic.NewAggregator(traffic.DefaultPeriods(), nil)
		result, err := agg.Aggregate(context.Background(), data)
		require.NoError(t, err)

		// Every period saw every state.
		for _, period := range agg.Periods() {
			assert.Len(t, result[period.Name], 3, "period %s", period.Name)
		}
	})
}
