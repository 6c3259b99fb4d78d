package views

import (
	"greetings/internal/l10n"

	zone "github.com/lrstanley/bubblezone"
)

// ViewProps contains UI-specific properties provided by the Controller.
type ViewProps struct {
	Width, Height int
	Strings       *l10n.Table
	Zones         *zone.Manager // nil disables mouse hit zones
}

// CardProps describes one greeting row.
type CardProps struct {
	ViewProps

	Index       int
	Name        string
	Expanded    bool
	PaddingRows int
	Focused     bool
}

// View defines the contract for any renderable page in the TUI.
type View interface {
	Render(props ViewProps) string
}

// CardView renders a single list row.
type CardView interface {
	Render(props CardProps) string
}

var (
	_ View     = OnboardingView{}
	_ CardView = GreetingCardView{}
)

// Zone IDs for mouse hit testing.
const ContinueZone = "continue"

// GreetingZone is the zone ID of row index's expand button.
func GreetingZone(index int) string {
	return "greeting_" + itoa(index)
}

func mark(z *zone.Manager, id, s string) string {
	if z == nil {
		return s
	}
	return z.Mark(id, s)
}
