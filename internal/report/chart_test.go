package report

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/K2AAM/Modeling-Traffic-with-Markov-Chains/internal/errors"
	"github.com/K2AAM/Modeling-Traffic-with-Markov-Chains/internal/traffic"
)

func sampleDataset() traffic.Dataset {
	return traffic.Dataset{
		{Time: 8.0, State: traffic.StateLight, Probability: 0.7},
		{Time: 8.0, State: traffic.StateHeavy, Probability: 0.25},
		{Time: 8.0, State: traffic.StateGridlock, Probability: 0.05},
		{Time: 12.0, State: traffic.StateLight, Probability: 0.55},
		{Time: 12.0, State: traffic.StateHeavy, Probability: 0.35},
		{Time: 12.0, State: traffic.StateGridlock, Probability: 0.1},
		{Time: 16.5, State: traffic.StateLight, Probability: 0.2},
		{Time: 16.5, State: traffic.StateHeavy, Probability: 0.6},
		{Time: 16.5, State: traffic.StateGridlock, Probability: 0.2},
		{Time: 20.0, State: traffic.StateLight, Probability: 0.5},
		{Time: 20.0, State: traffic.StateHeavy, Probability: 0.35},
		{Time: 20.0, State: traffic.StateGridlock, Probability: 0.15},
	}
}

func TestNewChartRenderer_Defaults(t *testing.T) {
	r := NewChartRenderer(ChartConfig{}, nil)

	assert.Equal(t, "Traffic State Probabilities from 8 AM to 8 PM", r.cfg.Title)
	assert.Equal(t, 1080, r.cfg.Width)
	assert.Equal(t, 540, r.cfg.Height)
	assert.NotNil(t, r.logger)
}

func TestNewChartRenderer_CustomConfig(t *testing.T) {
	r := NewChartRenderer(ChartConfig{Title: "Custom", Width: 400, Height: 200}, nil)

	assert.Equal(t, "Custom", r.cfg.Title)
	assert.Equal(t, 400, r.cfg.Width)
	assert.Equal(t, 200, r.cfg.Height)
}

func TestChartRenderer_RenderPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traffic_probabilities_plot.png")
	r := NewChartRenderer(ChartConfig{}, nil)

	err := r.RenderPNG(sampleDataset(), path)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err, "output should be a valid PNG")
	assert.Equal(t, 1080, img.Bounds().Dx())
	assert.Equal(t, 540, img.Bounds().Dy())
}

func TestChartRenderer_RenderPNG_SinglePoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.png")
	r := NewChartRenderer(ChartConfig{}, nil)

	data := traffic.Dataset{
		{Time: 9.0, State: traffic.StateLight, Probability: 0.8},
	}

	err := r.RenderPNG(data, path)
	require.NoError(t, err, "a lone observation should still produce a chart")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestChartRenderer_RenderPNG_ConstantSeries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.png")
	r := NewChartRenderer(ChartConfig{}, nil)

	data := traffic.Dataset{
		{Time: 8.0, State: traffic.StateHeavy, Probability: 0.5},
		{Time: 12.0, State: traffic.StateHeavy, Probability: 0.5},
		{Time: 20.0, State: traffic.StateHeavy, Probability: 0.5},
	}

	err := r.RenderPNG(data, path)
	require.NoError(t, err, "a flat probability line should render")
}

func TestChartRenderer_RenderPNG_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.png")
	r := NewChartRenderer(ChartConfig{}, nil)

	err := r.RenderPNG(traffic.Dataset{}, path)
	require.NoError(t, err, "an empty dataset still draws the titled axes")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 1080, img.Bounds().Dx())
	assert.Equal(t, 540, img.Bounds().Dy())
}

func TestChartRenderer_RenderPNG_UnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "plot.png")
	r := NewChartRenderer(ChartConfig{}, nil)

	err := r.RenderPNG(sampleDataset(), path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeStorage))
}

func TestBuildSeries_StateOrderAndSorting(t *testing.T) {
	r := NewChartRenderer(ChartConfig{}, nil)

	data := traffic.Dataset{
		{Time: 10.0, State: traffic.StateHeavy, Probability: 0.4},
		{Time: 8.0, State: traffic.StateLight, Probability: 0.7},
		{Time: 8.0, State: traffic.StateHeavy, Probability: 0.3},
		{Time: 10.0, State: traffic.StateLight, Probability: 0.6},
	}

	series := r.buildSeries(data)
	require.Len(t, series, 2)

	first, ok := series[0].(chart.ContinuousSeries)
	require.True(t, ok)
	assert.Equal(t, "Heavy", first.Name, "series follow first appearance order")
	assert.Equal(t, []float64{8.0, 10.0}, first.XValues, "points are sorted by time")
	assert.Equal(t, []float64{0.3, 0.4}, first.YValues)

	second, ok := series[1].(chart.ContinuousSeries)
	require.True(t, ok)
	assert.Equal(t, "Light", second.Name)
	assert.Equal(t, []float64{8.0, 10.0}, second.XValues)
	assert.Equal(t, []float64{0.7, 0.6}, second.YValues)
}

func TestBuildSeries_PadsSinglePoint(t *testing.T) {
	r := NewChartRenderer(ChartConfig{}, nil)

	data := traffic.Dataset{
		{Time: 9.5, State: traffic.StateGridlock, Probability: 0.15},
	}

	series := r.buildSeries(data)
	require.Len(t, series, 1)

	s, ok := series[0].(chart.ContinuousSeries)
	require.True(t, ok)
	assert.Equal(t, []float64{9.5, 10.5}, s.XValues)
	assert.Equal(t, []float64{0.15, 0.15}, s.YValues)
}

func TestBuildSeries_EmptyDatasetPlaceholder(t *testing.T) {
	r := NewChartRenderer(ChartConfig{}, nil)

	series := r.buildSeries(traffic.Dataset{})
	require.Len(t, series, 1)

	s, ok := series[0].(chart.ContinuousSeries)
	require.True(t, ok)
	assert.Empty(t, s.Name, "the placeholder carries no legend entry")
	assert.Equal(t, []float64{8, 20}, s.XValues)
	assert.Equal(t, []float64{0, 0}, s.YValues)
	assert.Equal(t, drawing.ColorTransparent, s.Style.StrokeColor)
}
