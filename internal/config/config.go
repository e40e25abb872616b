package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "COCOA"

// Config represents the ambient application configuration
type Config struct {
	Logging    LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry  TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
	ReportFile string          `yaml:"report_file" envconfig:"REPORT_FILE"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/cocoa-report.log"`
}

// TelemetryConfig controls OpenTelemetry tracing of the pipeline steps
type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled" envconfig:"ENABLED" default:"false"`
	Exporter string `yaml:"exporter" envconfig:"EXPORTER" default:"stdout"`
}

// Load loads configuration from COCOA_* environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// validate validates the configuration
func (c *Config) validate() error {
	switch strings.ToLower(c.Logging.Output) {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output %q (want console, file or both)", c.Logging.Output)
	}

	if c.Logging.Format != "json" {
		// JSON is the only supported format
		c.Logging.Format = "json"
	}

	if c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}

	switch strings.ToLower(c.Telemetry.Exporter) {
	case "stdout", "none":
	default:
		return fmt.Errorf("unsupported trace exporter: %s", c.Telemetry.Exporter)
	}

	return nil
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Telemetry: TelemetryConfig{
			Enabled:  false,
			Exporter: "stdout",
		},
	}
}
