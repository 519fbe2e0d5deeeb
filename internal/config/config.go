// Package config holds the parsum command configuration
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/jzx17/parsum/pkg/types"
)

// ErrUsage indicates missing or extra positional arguments
var ErrUsage = errors.New("usage: parsum [-unit duration] [-log-level level] [-log-format console|json] <infile> <num_threads>")

// Environment variables consulted before command-line flags
const (
	EnvTimeUnit  = "PARSUM_TIME_UNIT"
	EnvLogLevel  = "PARSUM_LOG_LEVEL"
	EnvLogFormat = "PARSUM_LOG_FORMAT"
)

// Config holds the command configuration
type Config struct {
	// InputPath is the task file to read
	InputPath string

	// Workers is the number of worker goroutines
	Workers int

	// TimeUnit is the duration of one task amount unit
	TimeUnit time.Duration

	// LogLevel is a zap level name: debug, info, warn, error
	LogLevel string

	// LogFormat is console or json
	LogFormat string
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		TimeUnit:  time.Second,
		LogLevel:  "warn",
		LogFormat: "console",
	}
}

// Parse builds a configuration from defaults, then the environment (read
// through getenv), then command-line args. It does not validate.
func Parse(args []string, getenv func(string) string, output io.Writer) (*Config, error) {
	cfg := Default()
	if err := cfg.applyEnvironmentOverrides(getenv); err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet("parsum", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.DurationVar(&cfg.TimeUnit, "unit", cfg.TimeUnit, "duration of one task amount unit")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (console, json)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() != 2 {
		return nil, ErrUsage
	}
	cfg.InputPath = fs.Arg(0)

	workers, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrInvalidWorkerCount, fs.Arg(1))
	}
	cfg.Workers = workers

	return cfg, nil
}

func (c *Config) applyEnvironmentOverrides(getenv func(string) string) error {
	if getenv == nil {
		return nil
	}
	if v := getenv(EnvTimeUnit); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeUnit, err)
		}
		c.TimeUnit = d
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvLogFormat); v != "" {
		c.LogFormat = v
	}
	return nil
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return ErrUsage
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: %d", types.ErrInvalidWorkerCount, c.Workers)
	}
	if c.TimeUnit < 0 {
		return fmt.Errorf("time unit must not be negative, got %v", c.TimeUnit)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log format: %q", c.LogFormat)
	}
	return nil
}
