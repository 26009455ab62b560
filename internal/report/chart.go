package report

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/K2AAM/Modeling-Traffic-with-Markov-Chains/internal/errors"
	"github.com/K2AAM/Modeling-Traffic-with-Markov-Chains/internal/traffic"
)

// ChartConfig controls the rendered chart's geometry and title
type ChartConfig struct {
	Title  string
	Width  int
	Height int
}

// DefaultChartConfig returns the established figure layout, a 12x6 inch
// frame at 90 DPI
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Title:  "Traffic State Probabilities from 8 AM to 8 PM",
		Width:  1080,
		Height: 540,
	}
}

// ChartRenderer draws one probability line per traffic state and writes
// the result as a PNG file
type ChartRenderer struct {
	cfg    ChartConfig
	logger *slog.Logger
}

// NewChartRenderer creates a renderer. Zero-valued config fields fall
// back to DefaultChartConfig.
func NewChartRenderer(cfg ChartConfig, logger *slog.Logger) *ChartRenderer {
	if logger == nil {
		logger = slog.Default()
	}

	defaults := DefaultChartConfig()
	if cfg.Title == "" {
		cfg.Title = defaults.Title
	}
	if cfg.Width <= 0 {
		cfg.Width = defaults.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = defaults.Height
	}

	return &ChartRenderer{cfg: cfg, logger: logger}
}

// RenderPNG renders the dataset's state series to a PNG at path.
// Series appear in first-appearance order of their states; points within
// a series are sorted by time. An empty dataset still produces the
// titled empty axes, so a header-only input yields a chart the report
// can reference.
func (r *ChartRenderer) RenderPNG(data traffic.Dataset, path string) error {
	series := r.buildSeries(data)

	yMin, yMax := 0.0, 1.0
	for _, obs := range data {
		if obs.Probability < yMin {
			yMin = obs.Probability
		}
		if obs.Probability > yMax {
			yMax = obs.Probability
		}
	}

	ch := chart.Chart{
		Title:      r.cfg.Title,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		Width:      r.cfg.Width,
		Height:     r.cfg.Height,
		XAxis:      chart.XAxis{Name: "Time (hours)"},
		// Fixed Y bounds keep a flat probability line renderable; go-chart
		// rejects a zero-height value range.
		YAxis:  chart.YAxis{Name: "Probability", Range: &chart.ContinuousRange{Min: yMin, Max: yMax}},
		Series: series,
	}
	if len(data) > 0 {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return errors.NewRenderError("failed to render probability chart", err).
			WithContext("path", path)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to write chart to %s", path), err)
	}

	r.logger.Info("chart rendered",
		"path", path,
		"series", len(series),
		"points", len(data),
	)

	return nil
}

// buildSeries groups observations into one line series per state
func (r *ChartRenderer) buildSeries(data traffic.Dataset) []chart.Series {
	states := data.States()
	if len(states) == 0 {
		return placeholderSeries()
	}

	points := make(map[traffic.State][]traffic.Observation, len(states))
	for _, obs := range data {
		points[obs.State] = append(points[obs.State], obs)
	}

	style := chart.Style{StrokeWidth: 2}

	series := make([]chart.Series, 0, len(states))
	for _, state := range states {
		obs := points[state]
		sort.SliceStable(obs, func(i, j int) bool { return obs[i].Time < obs[j].Time })

		xs := make([]float64, len(obs))
		ys := make([]float64, len(obs))
		for i, o := range obs {
			xs[i] = o.Time
			ys[i] = o.Probability
		}

		// go-chart refuses series with fewer than two points, so a lone
		// observation is extended one hour at the same value.
		if len(xs) == 1 {
			xs = []float64{xs[0], xs[0] + 1}
			ys = []float64{ys[0], ys[0]}
		}

		series = append(series, chart.ContinuousSeries{
			Name:    string(state),
			XValues: xs,
			YValues: ys,
			Style:   style,
		})
	}

	return series
}

// placeholderSeries spans the reported day with an invisible line.
// go-chart needs one series of at least two points to render at all,
// including for an empty dataset whose chart is just the titled axes.
func placeholderSeries() []chart.Series {
	return []chart.Series{chart.ContinuousSeries{
		XValues: []float64{8, 20},
		YValues: []float64{0, 0},
		Style:   chart.Style{StrokeColor: drawing.ColorTransparent},
	}}
}
