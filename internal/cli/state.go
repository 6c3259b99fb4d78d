package cli

import (
	"fmt"

	"greetings/ui/console"

	"github.com/spf13/cobra"
)

// NewStateCommand creates the state command group.
func NewStateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect or clear saved UI state",
	}
	cmd.AddCommand(newStateShowCommand(), newStateResetCommand())
	return cmd
}

func newStateShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := GetConfig(ctx)

			store, err := OpenStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			b, err := store.Load(ctx)
			console.Print(cmd.OutOrStdout(), console.Report{
				Driver: store.Driver(),
				Path:   store.Path(),
				Bundle: b,
				Err:    err,
			})
			if err != nil {
				return fmt.Errorf("failed to load saved state: %w", err)
			}
			return nil
		},
	}
}

func newStateResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the saved slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := GetConfig(ctx)

			store, err := OpenStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Clear(ctx); err != nil {
				return fmt.Errorf("failed to reset saved state: %w", err)
			}
			GetLogger(ctx).Info("saved state cleared", "path", store.Path())
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cleared saved state at %s\n", store.Path())
			return nil
		},
	}
}
