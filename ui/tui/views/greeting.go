package views

import (
	"strconv"
	"strings"

	"greetings/internal/l10n"
	"greetings/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	cardTextRows  = 2 // greeting label and name
	cardFrameRows = 2 // top and bottom border
	minCardWidth  = 24
)

// CardHeight is the rendered height of a card with the given extra padding.
func CardHeight(paddingRows int) int {
	return cardFrameRows + cardTextRows + max(paddingRows, 0)
}

type GreetingCardView struct{}

func (v GreetingCardView) Render(props CardProps) string {
	style := styles.CardStyle
	if props.Focused {
		style = styles.FocusedCardStyle
	}

	outer := max(props.Width, minCardWidth)
	inner := outer - style.GetHorizontalMargins() - style.GetHorizontalBorderSize()
	content := inner - style.GetHorizontalPadding()

	label := props.Strings.Get(l10n.ShowMore)
	if props.Expanded {
		label = props.Strings.Get(l10n.ShowLess)
	}
	button := mark(props.Zones, GreetingZone(props.Index),
		styles.OutlinedButtonStyle.Render(label))

	textWidth := max(content-lipgloss.Width(button), 1)
	lines := []string{
		ansi.Truncate(props.Strings.Get(l10n.Hello), textWidth, "…"),
		styles.NameStyle.Render(ansi.Truncate(props.Name, textWidth, "…")),
	}
	for i := 0; i < props.PaddingRows; i++ {
		lines = append(lines, "")
	}
	column := lipgloss.NewStyle().Width(textWidth).Render(strings.Join(lines, "\n"))

	row := lipgloss.JoinHorizontal(lipgloss.Top, column, button)
	return style.Width(inner).Render(row)
}

func itoa(i int) string { return strconv.Itoa(i) }
