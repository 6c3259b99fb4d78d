// Package cli provides the command-line interface for greetings.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"greetings/internal/config"
	"greetings/internal/l10n"
	"greetings/internal/savedstate"
	"greetings/ui/tui"
	"greetings/ui/tui/state"
	"greetings/ui/tui/styles"

	"github.com/spf13/cobra"
)

// Version information (set at build time).
var Version = "0.1.0"

// configKey is used to store config in context.
type configKey struct{}

// loggerKey is used to store the logger in context.
type loggerKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var (
		cfgFile   string
		logCloser io.Closer
	)

	rootCmd := &cobra.Command{
		Use:   "greetings",
		Short: "Greetings - a scrolling list of expandable greetings",
		Long: `Greetings shows a one-time welcome screen followed by a long list of
greeting cards that expand and collapse with a spring animation.

Which rows are expanded, and whether the welcome screen was dismissed,
is saved and restored across runs.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, used, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger, closer, err := NewLogger(cfg.LogFile, cfg.LogLevel)
			if err != nil {
				return err
			}
			logCloser = closer
			if used != "" {
				logger.Debug("using config file", "path", used)
			}

			ctx := context.WithValue(cmd.Context(), configKey{}, &cfg)
			ctx = context.WithValue(ctx, loggerKey{}, logger)
			cmd.SetContext(ctx)
			return nil
		},
		RunE:          runTUI,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./greetings.yaml)")
	rootCmd.PersistentFlags().String("state", "", "Path to the saved-state database")
	rootCmd.PersistentFlags().String("driver", "", "Saved-state driver (sqlite|duckdb)")
	rootCmd.PersistentFlags().String("locale", "", "Locale for UI strings (default: from environment)")
	rootCmd.PersistentFlags().String("theme", "", "Colour theme (auto|light|dark)")
	rootCmd.PersistentFlags().Int("count", 0, "Number of greeting rows")
	rootCmd.PersistentFlags().Int("fps", 0, "Animation frame rate")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().Bool("reset", false, "Clear saved state before starting")

	_ = rootCmd.RegisterFlagCompletionFunc("driver", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{savedstate.DriverSQLite, savedstate.DriverDuckDB}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("theme", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "light", "dark"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(NewStateCommand())

	// PersistentPostRun is skipped when RunE fails, so the log file is
	// closed from a wrapper around every RunE instead.
	closeAfterRun(rootCmd, func() {
		if logCloser != nil {
			_ = logCloser.Close()
			logCloser = nil
		}
	})

	return rootCmd
}

// closeAfterRun wraps the RunE of cmd and all its subcommands so that done
// runs once the command returns, whether or not it failed.
func closeAfterRun(cmd *cobra.Command, done func()) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(c *cobra.Command, args []string) error {
			defer done()
			err := run(c, args)
			if err != nil {
				GetLogger(c.Context()).Error("command failed", "command", c.CommandPath(), "error", err)
			}
			return err
		}
	}
	for _, sub := range cmd.Commands() {
		closeAfterRun(sub, done)
	}
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	// Return default config if none in context
	cfg := config.DefaultConfig()
	return &cfg
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

// NewLogger builds the app logger. The terminal belongs to the TUI, so logs
// only go to a file; an empty path discards them.
func NewLogger(path, level string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), nil, nil
	}

	lvl, err := config.ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl})), f, nil
}

// OpenStore opens the saved-state store named by cfg.
func OpenStore(ctx context.Context, cfg *config.Config) (*savedstate.SQLStore, error) {
	store, err := savedstate.Open(ctx, cfg.Driver, cfg.StatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open saved state: %w", err)
	}
	return store, nil
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	ctx := cmd.Context()
	cfg := GetConfig(ctx)
	logger := GetLogger(ctx)

	styles.ApplyTheme(cfg.Theme)

	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close saved state: %w", cerr))
		}
	}()

	if cfg.Reset {
		if err := store.Clear(ctx); err != nil {
			return fmt.Errorf("failed to reset saved state: %w", err)
		}
		logger.Info("saved state cleared", "path", store.Path())
	}

	s := restoreState(ctx, store, cfg.Count, logger)

	writer, err := savedstate.NewWriter(store, logger)
	if err != nil {
		return err
	}
	if err := writer.Start(ctx); err != nil {
		return err
	}
	defer writer.Stop()

	catalog, err := l10n.NewCatalog()
	if err != nil {
		return err
	}
	table := catalog.Lookup(cfg.Locale)
	logger.Info("starting",
		"rows", s.Len(),
		"locale", table.Tag.String(),
		"driver", store.Driver(),
		"state", store.Path(),
	)

	return tui.Start(s, tui.Options{
		Strings: table,
		FPS:     cfg.FPS,
		Saver:   writer,
		Logger:  logger,
	})
}

// restoreState loads the saved bundle. A failed load starts from defaults.
func restoreState(ctx context.Context, store savedstate.Store, count int, logger *slog.Logger) *state.AppState {
	names := state.DefaultNames(count)
	b, err := store.Load(ctx)
	if err != nil {
		logger.Warn("failed to restore saved state, starting fresh", "error", err)
		return state.New(names)
	}
	logger.Debug("restored saved state", "slots", len(b))
	return state.Restore(b, names)
}
