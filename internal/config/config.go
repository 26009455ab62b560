package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Artifacts ArtifactsConfig `yaml:"artifacts" envconfig:"ARTIFACTS"`
	Export    ExportConfig    `yaml:"export" envconfig:"EXPORT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// ArtifactsConfig contains the input and output file locations
type ArtifactsConfig struct {
	InputCSV   string `yaml:"input_csv" envconfig:"INPUT_CSV"`
	OutputDir  string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	ChartPNG   string `yaml:"chart_png" envconfig:"CHART_PNG"`
	ReportHTML string `yaml:"report_html" envconfig:"REPORT_HTML"`
	ReportPDF  string `yaml:"report_pdf" envconfig:"REPORT_PDF"`
}

// ExportConfig contains PDF export configuration
type ExportConfig struct {
	Timeout         time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
	AllowFileAccess bool          `yaml:"allow_file_access" envconfig:"ALLOW_FILE_ACCESS"`
	PrintBackground bool          `yaml:"print_background" envconfig:"PRINT_BACKGROUND"`
}

// Load loads configuration from defaults, an optional YAML file, and
// environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	cfg := Default()

	configFile := getConfigFilePath()
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Environment variables win over file values. Fields without a
	// TRAFFIC_* variable keep whatever the file or defaults set.
	if err := envconfig.Process("TRAFFIC", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays configuration from a YAML file
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %q", c.Logging.Format)
	}

	switch c.Logging.Output {
	case "stdout", "file", "both":
	default:
		return fmt.Errorf("invalid log output: %q", c.Logging.Output)
	}

	if c.Logging.Output != "stdout" && c.Logging.FilePath == "" {
		return fmt.Errorf("log file path required for output %q", c.Logging.Output)
	}

	if c.Export.Timeout <= 0 {
		return fmt.Errorf("export timeout must be positive, got %s", c.Export.Timeout)
	}

	if c.Artifacts.InputCSV == "" {
		return fmt.Errorf("input CSV path must not be empty")
	}
	if c.Artifacts.ChartPNG == "" || c.Artifacts.ReportHTML == "" || c.Artifacts.ReportPDF == "" {
		return fmt.Errorf("artifact file names must not be empty")
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if path := os.Getenv("TRAFFIC_CONFIG"); path != "" {
		return path
	}

	locations := []string{
		"traffic.yaml",
		"configs/traffic.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stdout",
			FilePath: "logs/traffic.log",
		},
		Artifacts: ArtifactsConfig{
			InputCSV:   "traffic_simulation.csv",
			OutputDir:  ".",
			ChartPNG:   "traffic_probabilities_plot.png",
			ReportHTML: "traffic_simulation_report.html",
			ReportPDF:  "traffic_simulation_report.pdf",
		},
		Export: ExportConfig{
			Timeout:         90 * time.Second,
			AllowFileAccess: true,
			PrintBackground: true,
		},
	}
}
