package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultWorkers   = 4
	DefaultBatchSize = 100
	DefaultFormat    = "json"
	DefaultPattern   = "*.smi"
	DefaultLogLevel  = "info"
)

// Config is the top-level molbatch configuration. Fields map 1:1 to
// config.example.yaml.
type Config struct {
	// Workers is the requested worker pool size. The orchestrator further
	// caps it by CPU count and batch size.
	Workers int `yaml:"workers"`

	// BatchSize is the number of compounds dispatched per chunk.
	BatchSize int `yaml:"batch_size"`

	// LogLevel is one of: debug | info | warn | error.
	LogLevel string `yaml:"log_level"`

	// Sequential disables the worker pool and processes compounds one by
	// one. The result contract is unchanged.
	Sequential bool `yaml:"sequential"`

	Output OutputConfig `yaml:"output"`
	Watch  WatchConfig  `yaml:"watch"`
}

// OutputConfig controls where and how results are written.
type OutputConfig struct {
	// Format is the report format: json | csv.
	Format string `yaml:"format"`

	// Path is the report file path. Empty means no report file.
	Path string `yaml:"path"`

	// MetricsPath is the Prometheus textfile path. Empty disables the
	// textfile.
	MetricsPath string `yaml:"metrics_path"`
}

// WatchConfig configures drop-directory mode.
type WatchConfig struct {
	// Dir is the directory watched for new input files.
	Dir string `yaml:"dir"`

	// Pattern is the filename glob new files must match.
	Pattern string `yaml:"pattern"`
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with sensible defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a Config pre-populated with default values.
func Defaults() *Config {
	return &Config{
		Workers:   DefaultWorkers,
		BatchSize: DefaultBatchSize,
		LogLevel:  DefaultLogLevel,
		Output: OutputConfig{
			Format: DefaultFormat,
		},
		Watch: WatchConfig{
			Pattern: DefaultPattern,
		},
	}
}

// validate checks required fields and structural constraints.
func validate(cfg *Config) error {
	if cfg.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}
	if cfg.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive")
	}
	switch cfg.Output.Format {
	case "json", "csv":
	default:
		return fmt.Errorf("output.format: unknown format %q", cfg.Output.Format)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}
	if cfg.Watch.Pattern == "" {
		return fmt.Errorf("watch.pattern must not be empty")
	}
	return nil
}
