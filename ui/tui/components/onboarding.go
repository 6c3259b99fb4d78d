package components

import (
	"greetings/internal/l10n"
	"greetings/ui/tui/views"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

// Onboarding is the welcome screen. Its continue action fires at most once.
type Onboarding struct {
	Strings *l10n.Table
	Zones   *zone.Manager
	Keys    KeyMap

	onContinue    func()
	done          bool
	width, height int
}

func NewOnboarding(table *l10n.Table, zones *zone.Manager, onContinue func()) *Onboarding {
	return &Onboarding{
		Strings:    table,
		Zones:      zones,
		Keys:       DefaultKeyMap(),
		onContinue: onContinue,
		width:      defaultWidth,
		height:     defaultHeight,
	}
}

func (o *Onboarding) Init() tea.Cmd {
	return nil
}

func (o *Onboarding) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 && msg.Height > 0 {
			o.width, o.height = msg.Width, msg.Height
		}
	case tea.KeyMsg:
		if key.Matches(msg, o.Keys.Continue) {
			return o, o.Continue()
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft &&
			o.Zones != nil && o.Zones.Get(views.ContinueZone).InBounds(msg) {
			return o, o.Continue()
		}
	}
	return o, nil
}

// Continue invokes the callback the first time it is called. Later calls are no-ops.
func (o *Onboarding) Continue() tea.Cmd {
	if o.done {
		return nil
	}
	o.done = true
	if o.onContinue != nil {
		o.onContinue()
	}
	return stateChanged
}

// Done reports whether continue has fired.
func (o *Onboarding) Done() bool { return o.done }

func (o *Onboarding) View() string {
	return views.RenderOnboarding(views.ViewProps{
		Width:   o.width,
		Height:  o.height,
		Strings: o.Strings,
		Zones:   o.Zones,
	})
}
