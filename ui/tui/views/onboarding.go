package views

import (
	"greetings/internal/l10n"
	"greetings/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

type OnboardingView struct{}

func (v OnboardingView) Render(props ViewProps) string {
	message := styles.MessageStyle.Render(props.Strings.Get(l10n.OnboardingMessage))
	button := mark(props.Zones, ContinueZone,
		styles.ButtonStyle.Render(props.Strings.Get(l10n.ContinueButton)))

	content := lipgloss.JoinVertical(lipgloss.Center, message, button)
	if props.Width <= 0 || props.Height <= 0 {
		return content
	}
	return lipgloss.Place(props.Width, props.Height, lipgloss.Center, lipgloss.Center, content)
}
