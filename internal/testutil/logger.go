// Package testutil holds helpers shared by the greetings test suites.
package testutil

import (
	"log/slog"
	"strings"
	"testing"
)

// NewTestLogger routes debug-level slog output into the test log, tagged with
// the test name. Output shows up for failing tests or under -v.
func NewTestLogger(tb testing.TB) *slog.Logger {
	tb.Helper()
	h := slog.NewTextHandler(tbWriter{tb: tb}, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h).With("test", tb.Name())
}

type tbWriter struct {
	tb testing.TB
}

func (w tbWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
