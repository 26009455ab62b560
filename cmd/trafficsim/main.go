package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/K2AAM/Modeling-Traffic-with-Markov-Chains/internal/config"
	"github.com/K2AAM/Modeling-Traffic-with-Markov-Chains/internal/exporter"
	"github.com/K2AAM/Modeling-Traffic-with-Markov-Chains/internal/infrastructure"
	"github.com/K2AAM/Modeling-Traffic-with-Markov-Chains/internal/markov"
	"github.com/K2AAM/Modeling-Traffic-with-Markov-Chains/internal/traffic"
)

func main() {
	out := flag.String("out", "traffic_simulation.csv", "output CSV file")
	from := flag.Float64("from", 8, "simulation start hour")
	to := flag.Float64("to", 20, "simulation end hour")
	step := flag.Float64("step", 0.5, "simulation step in hours")
	start := flag.String("start", "", "initial traffic state: Light, Heavy or Gridlock (defaults to Light)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.ContextWithRunID(context.Background())

	chain := markov.DefaultChain()

	runCfg := markov.RunConfig{
		StartHour: *from,
		EndHour:   *to,
		StepHours: *step,
	}
	if *start != "" {
		initial, err := chain.InitialDistribution(traffic.State(*start))
		if err != nil {
			logger.ErrorContext(ctx, "invalid start state",
				slog.String("state", *start),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		runCfg.Initial = initial
	}

	logger.InfoContext(ctx, "starting traffic simulation",
		slog.Float64("from", *from),
		slog.Float64("to", *to),
		slog.Float64("step", *step),
		slog.String("out", *out))

	data, err := chain.Run(runCfg)
	if err != nil {
		logger.ErrorContext(ctx, "simulation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	writer := exporter.NewDatasetWriter(logger)
	if err := writer.WriteDataset(*out, data); err != nil {
		logger.ErrorContext(ctx, "failed to write dataset",
			slog.String("path", *out),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "simulation finished",
		slog.String("out", *out),
		slog.Int("rows", len(data)),
		slog.Int("states", len(chain.States())))
}
