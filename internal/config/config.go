package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "SALES"

const (
	PolicySkip = "skip"
	PolicyFail = "fail"

	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	ErrInvalidPolicy    = errors.New("malformed row policy must be skip or fail")
	ErrInvalidFormat    = errors.New("report format must be text, json or yaml")
	ErrInvalidLogLevel  = errors.New("log level must be debug, info, warn or error")
	ErrInvalidLogFormat = errors.New("log format must be text or json")
	ErrEmptyInputPath   = errors.New("input path is required")
)

// Config is loaded from SALES_* variables. Leaf fields carry no envconfig
// tag: a tag would also be looked up unprefixed (PATH, FORMAT, ...).
type Config struct {
	Env     string        `default:"development"`
	Input   InputConfig   `envconfig:"INPUT"`
	Report  ReportConfig  `envconfig:"REPORT"`
	Logging LoggingConfig `envconfig:"LOG"`
	Metrics MetricsConfig `envconfig:"METRICS"`
}

type InputConfig struct {
	Path          string `default:"sales_data.csv"`
	MalformedRows string `split_words:"true" default:"skip"`
}

type ReportConfig struct {
	Format     string        `default:"text"`
	XLSXPath   string        `split_words:"true"`
	Timeout    time.Duration `default:"0s"`
	Concurrent bool          `default:"true"`
}

type LoggingConfig struct {
	Level  string `default:"info"`
	Format string `default:"text"`
}

type MetricsConfig struct {
	Textfile string
}

// Load reads an optional .env file, then the SALES_* environment. Values
// already present in the environment win over the .env file.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) normalize() {
	c.Input.Path = strings.TrimSpace(c.Input.Path)
	c.Input.MalformedRows = strings.ToLower(strings.TrimSpace(c.Input.MalformedRows))
	c.Report.Format = strings.ToLower(strings.TrimSpace(c.Report.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
}

// Validate checks enumerated settings. It is called by Load and again by the
// CLI after flag overrides are applied.
func (c *Config) Validate() error {
	c.normalize()

	if c.Input.Path == "" {
		return ErrEmptyInputPath
	}

	switch c.Input.MalformedRows {
	case PolicySkip, PolicyFail:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPolicy, c.Input.MalformedRows)
	}

	switch c.Report.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Report.Format)
	}

	if _, err := c.Logging.SlogLevel(); err != nil {
		return err
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	return nil
}

// SlogLevel maps the configured level name to a slog.Level
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	switch l.Level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, l.Level)
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// FailOnMalformedRows reports whether the first malformed row aborts the run
func (c *Config) FailOnMalformedRows() bool {
	return c.Input.MalformedRows == PolicyFail
}
