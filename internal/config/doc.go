// Package config provides centralized configuration management for the
// traffic report pipeline. It handles loading configuration from multiple
// sources, validation, and resolution of the artifact file paths the
// pipeline reads and writes.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern TRAFFIC_* for namespacing:
//
//	TRAFFIC_LOGGING_LEVEL=debug
//	TRAFFIC_LOGGING_OUTPUT=both
//	TRAFFIC_ARTIFACTS_INPUT_CSV=traffic_simulation.csv
//	TRAFFIC_ARTIFACTS_OUTPUT_DIR=/tmp/reports
//	TRAFFIC_EXPORT_TIMEOUT=90s
//
// The config file location itself can be overridden with TRAFFIC_CONFIG;
// otherwise traffic.yaml and configs/traffic.yaml are probed.
//
// # Path Management
//
// The generated report references its chart image by absolute path, so all
// artifact locations are resolved once through ResolveArtifacts:
//
//	paths, err := cfg.ResolveArtifacts()
//	// paths.ChartPNG, paths.ReportHTML, paths.ReportPDF
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
