package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Component is the interface that all UI components must implement.
// It is similar to tea.Model but tailored for widgets.
type Component interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Model, tea.Cmd)
	View() string
}

// FrameMsg advances running animations by one frame.
type FrameMsg time.Time

// StateChangedMsg reports that a restorable flag changed and should be saved.
type StateChangedMsg struct{}

func stateChanged() tea.Msg { return StateChangedMsg{} }

func frameCmd(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

var (
	_ Component = (*GreetingList)(nil)
	_ Component = (*Onboarding)(nil)
)
