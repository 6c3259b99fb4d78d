package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "sqlite", cfg.Driver)
	assert.Equal(t, "auto", cfg.Theme)
	assert.Equal(t, 1000, cfg.Count)
	assert.Equal(t, 60, cfg.FPS)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "state.db", filepath.Base(cfg.StatePath))
	assert.False(t, cfg.Reset)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantField string
	}{
		{name: "valid default config", cfg: DefaultConfig()},
		{name: "duckdb driver", cfg: DefaultConfig().WithDriver("duckdb")},
		{name: "unknown driver", cfg: DefaultConfig().WithDriver("postgres"), wantField: "driver"},
		{name: "dark theme", cfg: DefaultConfig().WithTheme("dark")},
		{name: "unknown theme", cfg: DefaultConfig().WithTheme("sepia"), wantField: "theme"},
		{name: "zero count", cfg: DefaultConfig().WithCount(0), wantField: "count"},
		{name: "fps too high", cfg: func() Config { c := DefaultConfig(); c.FPS = 1000; return c }(), wantField: "fps"},
		{name: "bad log level", cfg: func() Config { c := DefaultConfig(); c.LogLevel = "loud"; return c }(), wantField: "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr), "expected *ConfigError, got %v", err)
			assert.Equal(t, tt.wantField, cfgErr.Field)
			assert.Contains(t, err.Error(), "config error: "+tt.wantField)
		})
	}
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("greetings", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.String("state", "", "")
	fs.String("theme", "", "")
	fs.Int("count", 0, "")
	fs.String("log-level", "", "")
	return fs
}

func TestLoad_DefaultsWithoutSources(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, used, err := Load("", nil)
	require.NoError(t, err)
	assert.Empty(t, used)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	yamlContent := "theme: light\ncount: 10\nfps: 30\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "greetings.yaml"), []byte(yamlContent), 0o644))

	// env overrides file
	t.Setenv("GREETINGS_COUNT", "20")
	t.Setenv("GREETINGS_THEME", "dark")

	// flags override env
	fs := newFlagSet()
	require.NoError(t, fs.Parse([]string{"--theme", "LIGHT", "--state", "/tmp/x.db", "--log-level", "warn"}))

	cfg, used, err := Load("", fs)
	require.NoError(t, err)

	assert.Equal(t, "greetings.yaml", used)
	assert.Equal(t, 30, cfg.FPS, "file value survives when nothing overrides it")
	assert.Equal(t, 20, cfg.Count, "env overrides file")
	assert.Equal(t, "light", cfg.Theme, "flag overrides env and is normalised")
	assert.Equal(t, "/tmp/x.db", cfg.StatePath, "--state maps to state_path")
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_ExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("driver: duckdb\n"), 0o644))

	cfg, used, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, "duckdb", cfg.Driver)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GREETINGS_COUNT", "-1")

	_, _, err := Load("", nil)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "count", cfgErr.Field)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", level.String())

	_, err = ParseLevel("")
	assert.Error(t, err)
}
