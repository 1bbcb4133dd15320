// Package config loads and watches the editor configuration.
//
// Configuration lives in a single TOML file. A missing file is not an
// error: the editor runs on defaults. The Watcher reloads the file when
// it changes on disk so blink timing and plugin settings can be tuned
// without restarting.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Errors returned by configuration operations.
var (
	// ErrInvalidBlinkPeriod indicates a non-positive blink period.
	ErrInvalidBlinkPeriod = errors.New("blink period must be positive")

	// ErrInvalidQuiescentWindow indicates a negative quiescent window.
	ErrInvalidQuiescentWindow = errors.New("quiescent window cannot be negative")

	// ErrInvalidLogLevel indicates an unknown log level name.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Config holds the editor settings.
type Config struct {
	// Caret controls cursor blink timing.
	Caret CaretConfig `toml:"caret"`

	// Plugins controls palette plugin loading.
	Plugins PluginConfig `toml:"plugins"`

	// Logging controls diagnostic output.
	Logging LoggingConfig `toml:"logging"`
}

// CaretConfig holds cursor timing settings, in milliseconds.
type CaretConfig struct {
	BlinkPeriodMS     int `toml:"blink_period_ms"`
	QuiescentWindowMS int `toml:"quiescent_window_ms"`
}

// BlinkPeriod returns the blink period as a duration.
func (c CaretConfig) BlinkPeriod() time.Duration {
	return time.Duration(c.BlinkPeriodMS) * time.Millisecond
}

// QuiescentWindow returns the post-interaction hold-off as a duration.
func (c CaretConfig) QuiescentWindow() time.Duration {
	return time.Duration(c.QuiescentWindowMS) * time.Millisecond
}

// PluginConfig holds plugin loading settings.
type PluginConfig struct {
	// Dir is the directory scanned for *.lua palette plugins.
	// Empty disables plugin loading.
	Dir string `toml:"dir"`
}

// LoggingConfig holds diagnostic output settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error, none.
	Level string `toml:"level"`

	// File is the log destination. Empty discards log output.
	File string `toml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Caret: CaretConfig{
			BlinkPeriodMS:     700,
			QuiescentWindowMS: 500,
		},
		Plugins: PluginConfig{
			Dir: defaultPluginDir(),
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

func defaultPluginDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "quill", "plugins")
}

// Load reads the configuration at path, layered over the defaults.
// A missing file returns the defaults with no error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("validating config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.Caret.BlinkPeriodMS <= 0 {
		return fmt.Errorf("caret.blink_period_ms = %d: %w", c.Caret.BlinkPeriodMS, ErrInvalidBlinkPeriod)
	}
	if c.Caret.QuiescentWindowMS < 0 {
		return fmt.Errorf("caret.quiescent_window_ms = %d: %w", c.Caret.QuiescentWindowMS, ErrInvalidQuiescentWindow)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error", "none":
	default:
		return fmt.Errorf("logging.level = %q: %w", c.Logging.Level, ErrInvalidLogLevel)
	}
	return nil
}
