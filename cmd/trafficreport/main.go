package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/K2AAM/Modeling-Traffic-with-Markov-Chains/internal/config"
	"github.com/K2AAM/Modeling-Traffic-with-Markov-Chains/internal/infrastructure"
	"github.com/K2AAM/Modeling-Traffic-with-Markov-Chains/internal/pipeline"
)

func main() {
	input := flag.String("input", "", "input CSV file (defaults to traffic_simulation.csv)")
	outDir := flag.String("outdir", "", "directory for generated artifacts (defaults to the working directory)")
	timeout := flag.Duration("timeout", 0, "PDF export timeout (defaults to the configured value)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	// Flags win over config file and environment
	if *input != "" {
		cfg.Artifacts.InputCSV = *input
	}
	if *outDir != "" {
		cfg.Artifacts.OutputDir = *outDir
	}
	if *timeout > 0 {
		cfg.Export.Timeout = *timeout
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.ContextWithRunID(context.Background())

	logger.InfoContext(ctx, "starting traffic report run",
		slog.String("input", cfg.Artifacts.InputCSV),
		slog.String("output_dir", cfg.Artifacts.OutputDir),
		slog.Duration("export_timeout", cfg.Export.Timeout))

	if err := cfg.EnsureOutputDir(); err != nil {
		logger.ErrorContext(ctx, "cannot create output directory",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	paths, err := cfg.ResolveArtifacts()
	if err != nil {
		logger.ErrorContext(ctx, "cannot resolve artifact paths",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	runner := pipeline.NewRunner(pipeline.DefaultStages(cfg, logger), logger)
	result, err := runner.Run(ctx, pipeline.NewState(paths))
	if err != nil {
		logger.ErrorContext(ctx, "pipeline failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// The PDF is the only optional artifact. Its failure is reported but
	// does not change the exit code: the HTML report is already on disk.
	fmt.Println(exportStatusLine(result))

	logger.InfoContext(ctx, "run finished",
		slog.String("run_id", result.RunID),
		slog.Duration("duration", result.Duration),
		slog.Bool("pdf_exported", result.ExportErr == nil))
}

// exportStatusLine reports the PDF outcome on stdout in the format the
// reporting scripts expect
func exportStatusLine(result *pipeline.Result) string {
	if result.ExportErr != nil {
		return fmt.Sprintf("Error generating PDF: %v", result.ExportErr)
	}
	return "PDF report generated successfully!"
}
