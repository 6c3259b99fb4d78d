package tui

import (
	"io"
	"log/slog"

	"greetings/internal/l10n"
	"greetings/internal/savedstate"
	"greetings/ui/tui/components"
	"greetings/ui/tui/state"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

// Saver receives a snapshot of the restorable state after every change.
type Saver interface {
	Submit(b savedstate.Bundle)
}

// Options configures the main model.
type Options struct {
	Strings *l10n.Table
	FPS     int
	Saver   Saver
	Logger  *slog.Logger
	Zones   *zone.Manager // nil disables mouse hit testing
}

// MainModel is the Bubble Tea Model acting as the Controller
type MainModel struct {
	state      *state.AppState
	onboarding *components.Onboarding
	greetings  *components.GreetingList
	keys       components.KeyMap
	saver      Saver
	zones      *zone.Manager
	logger     *slog.Logger
	quitting   bool
	width      int
	height     int
}

func InitialModel(s *state.AppState, opts Options) MainModel {
	if opts.Strings == nil {
		opts.Strings = l10n.MustTable("en")
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	m := MainModel{
		state:  s,
		keys:   components.DefaultKeyMap(),
		saver:  opts.Saver,
		zones:  opts.Zones,
		logger: opts.Logger,
	}
	m.onboarding = components.NewOnboarding(opts.Strings, opts.Zones, func() {
		if s.DismissOnboarding() {
			opts.Logger.Info("onboarding dismissed")
		}
	})
	m.greetings = components.NewGreetingList(s, opts.Strings, opts.Zones, opts.FPS)
	return m
}

func (m *MainModel) Init() tea.Cmd {
	return nil
}

func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			m.SaveState()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.onboarding.Update(msg)
		m.greetings.Update(msg)
		return m, nil

	case components.StateChangedMsg:
		m.SaveState()
		return m, nil

	case components.FrameMsg:
		_, cmd := m.greetings.Update(msg)
		return m, cmd
	}

	if m.state.Screen() == state.ScreenOnboarding {
		_, cmd := m.onboarding.Update(msg)
		return m, cmd
	}
	_, cmd := m.greetings.Update(msg)
	return m, cmd
}

// SaveState hands the current snapshot to the saver.
func (m *MainModel) SaveState() {
	if m.saver == nil {
		return
	}
	b := m.state.Save()
	m.logger.Debug("state changed", "slots", len(b))
	m.saver.Submit(b)
}

func (m *MainModel) View() string {
	if m.quitting {
		return ""
	}

	var out string
	switch m.state.Screen() {
	case state.ScreenOnboarding:
		out = m.onboarding.View()
	default:
		out = m.greetings.View()
	}
	if m.zones == nil {
		return out
	}
	return m.zones.Scan(out)
}

// Start runs the program until the user quits.
func Start(s *state.AppState, opts Options) error {
	if opts.Zones == nil {
		opts.Zones = zone.New()
	}
	defer opts.Zones.Close()

	m := InitialModel(s, opts)
	p := tea.NewProgram(
		&m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
