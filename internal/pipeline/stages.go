package pipeline

import (
	"context"
	"log/slog"

	"github.com/K2AAM/Modeling-Traffic-with-Markov-Chains/internal/config"
	"github.com/K2AAM/Modeling-Traffic-with-Markov-Chains/internal/exporter"
	"github.com/K2AAM/Modeling-Traffic-with-Markov-Chains/internal/report"
	"github.com/K2AAM/Modeling-Traffic-with-Markov-Chains/internal/traffic"
)

// LoadStage reads the input CSV into the run state
type LoadStage struct {
	logger *slog.Logger
}

// NewLoadStage creates the dataset loading stage
func NewLoadStage(logger *slog.Logger) *LoadStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoadStage{logger: logger}
}

func (s *LoadStage) ID() string   { return "load" }
func (s *LoadStage) Name() string { return "Load Dataset" }

func (s *LoadStage) Run(ctx context.Context, state *State) error {
	data, err := traffic.LoadCSV(state.Paths.InputCSV)
	if err != nil {
		return err
	}

	state.Dataset = data
	s.logger.InfoContext(ctx, "dataset loaded",
		"path", state.Paths.InputCSV,
		"rows", len(data),
		"states", len(data.States()),
	)

	return nil
}

// AggregateStage computes the per-period mean probabilities
type AggregateStage struct {
	aggregator *traffic.Aggregator
	logger     *slog.Logger
}

// NewAggregateStage creates the aggregation stage
func NewAggregateStage(aggregator *traffic.Aggregator, logger *slog.Logger) *AggregateStage {
	if aggregator == nil {
		aggregator = traffic.NewAggregator(nil, logger)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AggregateStage{aggregator: aggregator, logger: logger}
}

func (s *AggregateStage) ID() string   { return "aggregate" }
func (s *AggregateStage) Name() string { return "Aggregate Periods" }

func (s *AggregateStage) Run(ctx context.Context, state *State) error {
	result, err := s.aggregator.Aggregate(ctx, state.Dataset)
	if err != nil {
		return err
	}

	state.Result = result
	return nil
}

// ChartStage renders the probability line chart PNG
type ChartStage struct {
	renderer *report.ChartRenderer
	logger   *slog.Logger
}

// NewChartStage creates the chart rendering stage
func NewChartStage(renderer *report.ChartRenderer, logger *slog.Logger) *ChartStage {
	if renderer == nil {
		renderer = report.NewChartRenderer(report.DefaultChartConfig(), logger)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChartStage{renderer: renderer, logger: logger}
}

func (s *ChartStage) ID() string   { return "chart" }
func (s *ChartStage) Name() string { return "Render Chart" }

func (s *ChartStage) Run(ctx context.Context, state *State) error {
	return s.renderer.RenderPNG(state.Dataset, state.Paths.ChartPNG)
}

// ReportStage fills the HTML report template and writes it to disk
type ReportStage struct {
	logger *slog.Logger
}

// NewReportStage creates the report rendering stage
func NewReportStage(logger *slog.Logger) *ReportStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportStage{logger: logger}
}

func (s *ReportStage) ID() string   { return "report" }
func (s *ReportStage) Name() string { return "Render Report" }

func (s *ReportStage) Run(ctx context.Context, state *State) error {
	data := report.BuildData(state.Result, state.Paths.ChartPNG, state.GeneratedAt)
	if err := report.WriteFile(state.Paths.ReportHTML, data); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "report written", "path", state.Paths.ReportHTML)
	return nil
}

// ExportStage prints the HTML report to PDF
type ExportStage struct {
	exporter exporter.DocumentExporter
	opts     exporter.Options
	logger   *slog.Logger
}

// NewExportStage creates the PDF export stage
func NewExportStage(docExporter exporter.DocumentExporter, opts exporter.Options, logger *slog.Logger) *ExportStage {
	if docExporter == nil {
		docExporter = exporter.NewChromeExporter(logger)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportStage{exporter: docExporter, opts: opts, logger: logger}
}

func (s *ExportStage) ID() string   { return "export" }
func (s *ExportStage) Name() string { return "Export PDF" }

func (s *ExportStage) Run(ctx context.Context, state *State) error {
	return s.exporter.Export(ctx, state.Paths.ReportHTML, state.Paths.ReportPDF, s.opts)
}

// DefaultStages assembles the standard five-stage reporting pipeline
func DefaultStages(cfg *config.Config, logger *slog.Logger) []Stage {
	return []Stage{
		NewLoadStage(logger),
		NewAggregateStage(traffic.NewAggregator(nil, logger), logger),
		NewChartStage(report.NewChartRenderer(report.DefaultChartConfig(), logger), logger),
		NewReportStage(logger),
		NewExportStage(exporter.NewChromeExporter(logger), exportOptions(cfg), logger),
	}
}

// exportOptions maps export configuration onto exporter options
func exportOptions(cfg *config.Config) exporter.Options {
	opts := exporter.DefaultOptions()
	if cfg == nil {
		return opts
	}

	opts.AllowFileAccess = cfg.Export.AllowFileAccess
	opts.PrintBackground = cfg.Export.PrintBackground
	if cfg.Export.Timeout > 0 {
		opts.Timeout = cfg.Export.Timeout
	}

	return opts
}
