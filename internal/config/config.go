// Package config holds the runtime settings of the greetings app.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config contains configurable parameters for the app.
// Use DefaultConfig() to get sensible defaults, then override as needed.
type Config struct {
	// Saved-state storage
	StatePath string `koanf:"state_path"` // Database file for restorable UI state
	Driver    string `koanf:"driver"`     // "sqlite" or "duckdb"
	Reset     bool   `koanf:"reset"`      // Wipe saved state before starting

	// Presentation
	Locale string `koanf:"locale"` // BCP-47 tag; empty means detect from environment
	Theme  string `koanf:"theme"`  // "auto", "light" or "dark"
	Count  int    `koanf:"count"`  // Number of greeting rows
	FPS    int    `koanf:"fps"`    // Animation frame rate

	// Logging
	LogFile  string `koanf:"log_file"`  // Empty discards log output
	LogLevel string `koanf:"log_level"` // debug, info, warn, error
}

// Defaults.
const (
	DefaultDriver   = "sqlite"
	DefaultTheme    = "auto"
	DefaultCount    = 1000
	DefaultFPS      = 60
	DefaultLogLevel = "info"
	MaxFPS          = 240
)

// DefaultStatePath returns the saved-state location under the user cache dir.
func DefaultStatePath() string {
	dir, err := os.UserCacheDir()
	if err != nil || dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "greetings", "state.db")
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		StatePath: DefaultStatePath(),
		Driver:    DefaultDriver,
		Theme:     DefaultTheme,
		Count:     DefaultCount,
		FPS:       DefaultFPS,
		LogLevel:  DefaultLogLevel,
	}
}

// WithStatePath returns a copy of the config with a different state location.
func (c Config) WithStatePath(path string) Config {
	c.StatePath = path
	return c
}

// WithDriver returns a copy of the config with a different state driver.
func (c Config) WithDriver(driver string) Config {
	c.Driver = driver
	return c
}

// WithCount returns a copy of the config with a different row count.
func (c Config) WithCount(n int) Config {
	c.Count = n
	return c
}

// WithTheme returns a copy of the config with a different theme.
func (c Config) WithTheme(theme string) Config {
	c.Theme = theme
	return c
}

// Validate checks if the configuration is valid and returns an error if not.
func (c Config) Validate() error {
	switch strings.ToLower(c.Driver) {
	case "sqlite", "duckdb":
	default:
		return &ConfigError{Field: "driver", Message: "must be sqlite or duckdb"}
	}
	switch strings.ToLower(c.Theme) {
	case "auto", "light", "dark":
	default:
		return &ConfigError{Field: "theme", Message: "must be auto, light or dark"}
	}
	if c.Count <= 0 {
		return &ConfigError{Field: "count", Message: "must be positive"}
	}
	if c.FPS <= 0 || c.FPS > MaxFPS {
		return &ConfigError{Field: "fps", Message: "must be between 1 and 240"}
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return &ConfigError{Field: "log_level", Message: "must be debug, info, warn or error"}
	}
	return nil
}

// ParseLevel maps a log level name to its slog level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(strings.TrimSpace(name)))
	return level, err
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error: " + e.Field + " " + e.Message
}
