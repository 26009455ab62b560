package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ArtifactPaths holds the resolved absolute locations of the pipeline's
// input file and the three generated artifacts.
type ArtifactPaths struct {
	InputCSV   string
	ChartPNG   string
	ReportHTML string
	ReportPDF  string
}

// ResolveArtifacts resolves the configured artifact locations to absolute
// paths. Generated files land in OutputDir; the input path is resolved
// against the working directory. The HTML report embeds the chart by its
// absolute path, so resolution happens once here rather than per consumer.
func (c *Config) ResolveArtifacts() (ArtifactPaths, error) {
	outDir, err := filepath.Abs(c.Artifacts.OutputDir)
	if err != nil {
		return ArtifactPaths{}, fmt.Errorf("failed to resolve output dir: %w", err)
	}

	input, err := filepath.Abs(c.Artifacts.InputCSV)
	if err != nil {
		return ArtifactPaths{}, fmt.Errorf("failed to resolve input path: %w", err)
	}

	return ArtifactPaths{
		InputCSV:   input,
		ChartPNG:   filepath.Join(outDir, c.Artifacts.ChartPNG),
		ReportHTML: filepath.Join(outDir, c.Artifacts.ReportHTML),
		ReportPDF:  filepath.Join(outDir, c.Artifacts.ReportPDF),
	}, nil
}

// EnsureOutputDir creates the output directory if it does not exist
func (c *Config) EnsureOutputDir() error {
	outDir, err := filepath.Abs(c.Artifacts.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to resolve output dir: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir %s: %w", outDir, err)
	}
	return nil
}
