package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix namespaces environment overrides, e.g. GREETINGS_THEME=dark.
const EnvPrefix = "GREETINGS_"

// findConfigFile finds the config file to use.
// Priority: explicit path > greetings.yaml > greetings.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"greetings.yaml", "greetings.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load reads configuration from defaults, file, environment variables and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// It returns the config together with the config file used, if any.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, string, error) {
	k := koanf.New(".")
	def := DefaultConfig()

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"state_path": def.StatePath,
		"driver":     def.Driver,
		"reset":      def.Reset,
		"locale":     def.Locale,
		"theme":      def.Theme,
		"count":      def.Count,
		"fps":        def.FPS,
		"log_file":   def.LogFile,
		"log_level":  def.LogLevel,
	}, "."), nil); err != nil {
		return Config{}, "", fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return Config{}, "", fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment: GREETINGS_LOG_LEVEL -> log_level
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return Config{}, "", fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			// --state is short for state_path
			if key == "state" {
				key = "state_path"
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return Config{}, "", fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, "", fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.Driver = strings.ToLower(cfg.Driver)
	cfg.Theme = strings.ToLower(cfg.Theme)

	if err := cfg.Validate(); err != nil {
		return Config{}, "", err
	}
	return cfg, used, nil
}
