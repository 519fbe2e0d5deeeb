package config

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jzx17/parsum/pkg/types"
)

func env(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, time.Second, cfg.TimeUnit)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]string{"tasks.txt", "4"}, nil, io.Discard)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "tasks.txt", cfg.InputPath)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, time.Second, cfg.TimeUnit)
}

func TestParse_Flags(t *testing.T) {
	cfg, err := Parse([]string{"-unit", "5ms", "-log-level", "debug", "-log-format", "json", "in", "2"}, nil, io.Discard)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 5*time.Millisecond, cfg.TimeUnit)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestParse_EnvironmentOverrides(t *testing.T) {
	getenv := env(map[string]string{
		EnvTimeUnit:  "10ms",
		EnvLogLevel:  "info",
		EnvLogFormat: "json",
	})

	cfg, err := Parse([]string{"in", "1"}, getenv, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Millisecond, cfg.TimeUnit)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)

	// flags win over the environment
	cfg, err = Parse([]string{"-unit", "0s", "in", "1"}, getenv, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), cfg.TimeUnit)

	_, err = Parse([]string{"in", "1"}, env(map[string]string{EnvTimeUnit: "soon"}), io.Discard)
	assert.Error(t, err)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"no args", nil, ErrUsage},
		{"missing thread count", []string{"in"}, ErrUsage},
		{"extra args", []string{"in", "2", "3"}, ErrUsage},
		{"non numeric thread count", []string{"in", "many"}, types.ErrInvalidWorkerCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.args, nil, io.Discard)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := Parse([]string{"-bogus", "in", "2"}, nil, io.Discard)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"zero workers", func(c *Config) { c.Workers = 0 }, true},
		{"negative workers", func(c *Config) { c.Workers = -2 }, true},
		{"missing input", func(c *Config) { c.InputPath = "" }, true},
		{"negative unit", func(c *Config) { c.TimeUnit = -time.Second }, true},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.InputPath = "in"
			cfg.Workers = 2
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	cfg := Default()
	cfg.InputPath = "in"
	assert.ErrorIs(t, cfg.Validate(), types.ErrInvalidWorkerCount)
}
