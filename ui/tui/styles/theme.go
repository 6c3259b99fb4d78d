package styles

import "github.com/charmbracelet/lipgloss"

var (
	Primary   = lipgloss.AdaptiveColor{Light: "#6200EE", Dark: "#BB86FC"}
	OnPrimary = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#000000"}
	Surface   = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#121212"}
	OnSurface = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}
	Subtle    = lipgloss.AdaptiveColor{Light: "#9E9E9E", Dark: "#616161"}

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Background(Primary).
			Foreground(OnPrimary).
			Padding(0, 2).
			MarginLeft(1).
			MarginRight(1)

	FocusedCardStyle = CardStyle.
				BorderForeground(OnSurface)

	NameStyle = lipgloss.NewStyle().
			Bold(true)

	OutlinedButtonStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(0, 1)

	ButtonStyle = lipgloss.NewStyle().
			Background(Primary).
			Foreground(OnPrimary).
			Bold(true).
			Padding(0, 3).
			MarginTop(1)

	MessageStyle = lipgloss.NewStyle().
			Foreground(OnSurface)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Subtle).
			PaddingLeft(1)
)

// ApplyTheme selects the light or dark palette. "auto" keeps lipgloss'
// terminal background detection.
func ApplyTheme(theme string) {
	switch theme {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	}
}
