package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Processing ProcessingConfig `yaml:"processing" envconfig:"PROCESSING"`
	Paths      PathsConfig      `yaml:"paths" envconfig:"PATHS"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// ProcessingConfig contains dataset processing configuration
type ProcessingConfig struct {
	// Delimiter used when reading CSV input
	Delimiter string `yaml:"delimiter" envconfig:"DELIMITER"`

	// MissingMarkers lists cell contents treated as missing values in
	// addition to empty cells
	MissingMarkers []string `yaml:"missing_markers" envconfig:"MISSING_MARKERS"`

	// DetectTypes enables numeric type inference on load
	DetectTypes bool `yaml:"detect_types" envconfig:"DETECT_TYPES"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// Default returns the configuration defaults
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/tabproc.log",
		},
		Processing: ProcessingConfig{
			Delimiter:      ",",
			MissingMarkers: []string{"NA", "NaN", "null"},
			DetectTypes:    true,
		},
		Paths: PathsConfig{
			DataDir:    "data",
			ReportsDir: "data/reports",
			LogsDir:    "logs",
		},
	}
}

// Load builds the configuration by overlaying, in order: defaults, the
// optional YAML config file, then TABPROC_* environment variables.
func Load() (*Config, error) {
	cfg := Default()

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := envconfig.Process("TABPROC", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// getConfigFilePath returns the config file location, overridable for tests
func getConfigFilePath() string {
	if path := os.Getenv("TABPROC_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}

// validate checks the configuration for invalid values
func (c *Config) validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Output) {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid log output mode: %s", c.Logging.Output)
	}

	if len(c.Processing.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", c.Processing.Delimiter)
	}

	return nil
}
