package cli

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"greetings/internal/savedstate"
	"greetings/internal/testutil"
	"greetings/ui/tui/state"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return ansi.Strip(out.String()), err
}

func seedStore(t *testing.T, path string, b savedstate.Bundle) {
	t.Helper()
	store, err := savedstate.Open(context.Background(), savedstate.DriverSQLite, path)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), b))
	require.NoError(t, store.Close())
}

func TestStateShow(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "state.db")
	seedStore(t, path, savedstate.Bundle{
		state.SlotOnboarding:    false,
		state.ExpandedSlot(3):   true,
		state.ExpandedSlot(999): true,
	})

	out, err := runCommand(t, "state", "show", "--state", path)
	require.NoError(t, err)
	assert.Contains(t, out, "GREETINGS STATE")
	assert.Contains(t, out, "greetings.3.expanded")
	assert.Contains(t, out, "onboarding dismissed | 2 expanded")
}

func TestStateReset(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "state.db")
	seedStore(t, path, savedstate.Bundle{state.SlotOnboarding: false})

	out, err := runCommand(t, "state", "reset", "--state", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared saved state")

	store, err := savedstate.Open(context.Background(), savedstate.DriverSQLite, path)
	require.NoError(t, err)
	defer store.Close()
	b, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestInvalidConfigRejected(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := runCommand(t, "state", "show", "--driver", "postgres", "--state", filepath.Join(t.TempDir(), "s.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config error: driver")
}

func TestNewLogger(t *testing.T) {
	logger, closer, err := NewLogger("", "debug")
	require.NoError(t, err)
	assert.Nil(t, closer)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))

	path := filepath.Join(t.TempDir(), "logs", "greetings.log")
	logger, closer, err = NewLogger(path, "warn")
	require.NoError(t, err)
	logger.Info("dropped")
	logger.Warn("kept", "row", 3)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
	assert.Contains(t, string(data), "row=3")
}

type failingStore struct{ savedstate.Store }

func (failingStore) Load(context.Context) (savedstate.Bundle, error) {
	return nil, assert.AnError
}

func TestRestoreStateFallsBackToDefaults(t *testing.T) {
	s := restoreState(context.Background(), failingStore{}, 5, testutil.NewTestLogger(t))
	assert.True(t, s.ShowOnboarding())
	assert.Equal(t, 5, s.Len())
}

func TestRestoreStateAppliesBundle(t *testing.T) {
	store, err := savedstate.Open(context.Background(), savedstate.DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.Save(context.Background(), savedstate.Bundle{
		state.SlotOnboarding:  false,
		state.ExpandedSlot(3): true,
	}))

	s := restoreState(context.Background(), store, 1000, testutil.NewTestLogger(t))
	assert.False(t, s.ShowOnboarding())
	assert.True(t, s.IsExpanded(3))
	assert.False(t, s.IsExpanded(4))
}

type countingCloser struct{ closed int }

func (c *countingCloser) Close() error {
	c.closed++
	return nil
}

func TestCloseAfterRunOnFailure(t *testing.T) {
	root := &cobra.Command{Use: "root", RunE: func(*cobra.Command, []string) error { return nil }}
	child := &cobra.Command{Use: "child", RunE: func(*cobra.Command, []string) error { return assert.AnError }}
	root.AddCommand(child)

	closer := &countingCloser{}
	closeAfterRun(root, func() { _ = closer.Close() })

	root.SetArgs([]string{"child"})
	root.SilenceErrors = true
	root.SilenceUsage = true
	err := root.Execute()
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, closer.closed, "failing subcommand must still release resources")
}

func TestFailedCommandIsLogged(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()

	// A regular file where the state directory should be makes Open fail.
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	logPath := filepath.Join(dir, "greetings.log")

	_, err := runCommand(t, "state", "show",
		"--state", filepath.Join(blocker, "state.db"),
		"--log-file", logPath)
	require.Error(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "command failed")
	assert.Contains(t, string(data), "greetings state show")
}
