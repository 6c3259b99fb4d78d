package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestApplyTheme(t *testing.T) {
	prev := lipgloss.HasDarkBackground()
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(prev) })

	ApplyTheme("light")
	if lipgloss.HasDarkBackground() {
		t.Error("Expected light theme to select the light palette")
	}

	ApplyTheme("dark")
	if !lipgloss.HasDarkBackground() {
		t.Error("Expected dark theme to select the dark palette")
	}

	// auto keeps whatever was detected or set before
	ApplyTheme("auto")
	if !lipgloss.HasDarkBackground() {
		t.Error("Expected auto to leave the background setting alone")
	}

	ApplyTheme("light")
	ApplyTheme("auto")
	if lipgloss.HasDarkBackground() {
		t.Error("Expected auto to leave the background setting alone")
	}
}
