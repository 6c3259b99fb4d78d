package components

import (
	"slices"
	"strings"

	"greetings/internal/l10n"
	"greetings/ui/tui/state"
	"greetings/ui/tui/styles"
	"greetings/ui/tui/views"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	helpHeight    = 1
)

// GreetingList renders the greeting rows with windowed materialisation: only
// rows intersecting the viewport exist as cards. Rows scrolled out of view are
// dropped; their expanded flags stay in the app state.
type GreetingList struct {
	State   *state.AppState
	Strings *l10n.Table
	Zones   *zone.Manager
	Keys    KeyMap
	Help    help.Model

	width, height int
	fps           int
	spring        harmonica.Spring
	cursor        int
	offset        int
	cards         map[int]*GreetingCard
	animating     bool
}

func NewGreetingList(s *state.AppState, table *l10n.Table, zones *zone.Manager, fps int) *GreetingList {
	h := help.New()
	h.Width = defaultWidth

	l := &GreetingList{
		State:   s,
		Strings: table,
		Zones:   zones,
		Keys:    DefaultKeyMap(),
		Help:    h,
		width:   defaultWidth,
		height:  defaultHeight,
		fps:     fps,
		spring:  NewPaddingSpring(fps),
		cards:   make(map[int]*GreetingCard),
	}
	l.layout()
	return l
}

func (l *GreetingList) Init() tea.Cmd {
	return nil
}

func (l *GreetingList) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.SetSize(msg.Width, msg.Height)
		return l, nil

	case FrameMsg:
		return l, l.advance()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, l.Keys.Up):
			l.MoveCursor(-1)
		case key.Matches(msg, l.Keys.Down):
			l.MoveCursor(1)
		case key.Matches(msg, l.Keys.PageUp):
			l.MoveCursor(-l.pageStep())
		case key.Matches(msg, l.Keys.PageDown):
			l.MoveCursor(l.pageStep())
		case key.Matches(msg, l.Keys.Home):
			l.MoveCursor(-l.State.Len())
		case key.Matches(msg, l.Keys.End):
			l.MoveCursor(l.State.Len())
		case key.Matches(msg, l.Keys.Toggle):
			return l, l.Toggle(l.cursor)
		}
		return l, nil

	case tea.MouseMsg:
		return l, l.handleMouse(msg)
	}
	return l, nil
}

func (l *GreetingList) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action == tea.MouseActionPress {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			l.Scroll(-1)
		case tea.MouseButtonWheelDown:
			l.Scroll(1)
		}
		return nil
	}

	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft || l.Zones == nil {
		return nil
	}
	for _, i := range l.Materialized() {
		if l.Zones.Get(views.GreetingZone(i)).InBounds(msg) {
			l.cursor = i
			return l.Toggle(i)
		}
	}
	return nil
}

// SetSize resizes the viewport. The bottom row is reserved for key help.
func (l *GreetingList) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	l.width = width
	l.height = height
	l.Help.Width = width
	l.layout()
}

// Toggle flips row i between collapsed and expanded.
func (l *GreetingList) Toggle(i int) tea.Cmd {
	if i < 0 || i >= l.State.Len() {
		return nil
	}
	expanded := l.State.ToggleExpanded(i)
	if c, ok := l.cards[i]; ok {
		c.SetExpanded(expanded)
	}
	l.layout()
	return tea.Batch(stateChanged, l.startAnimation())
}

// MoveCursor moves the focus by delta rows, scrolling as needed.
func (l *GreetingList) MoveCursor(delta int) {
	l.cursor += delta
	l.layout()
}

// Scroll moves the window by delta rows, dragging the focus along if it
// would leave the window.
func (l *GreetingList) Scroll(delta int) {
	n := l.State.Len()
	if n == 0 {
		return
	}
	l.offset = clamp(l.offset+delta, 0, n-1)
	start, end := l.VisibleRange()
	l.cursor = clamp(l.cursor, start, end-1)
	l.materialize()
}

// Cursor is the focused row.
func (l *GreetingList) Cursor() int { return l.cursor }

// Offset is the first row in the window.
func (l *GreetingList) Offset() int { return l.offset }

// Card returns the materialised card for row i, if any.
func (l *GreetingList) Card(i int) (*GreetingCard, bool) {
	c, ok := l.cards[i]
	return c, ok
}

// Materialized lists the rows that currently exist as cards, in order.
func (l *GreetingList) Materialized() []int {
	rows := make([]int, 0, len(l.cards))
	for i := range l.cards {
		rows = append(rows, i)
	}
	slices.Sort(rows)
	return rows
}

// Animating reports whether the frame loop is running.
func (l *GreetingList) Animating() bool { return l.animating }

// VisibleRange returns the half-open range of rows intersecting the viewport.
func (l *GreetingList) VisibleRange() (start, end int) {
	n := l.State.Len()
	vh := l.viewportHeight()
	used := 0
	end = l.offset
	for end < n && used < vh {
		used += l.rowHeight(end)
		end++
	}
	return l.offset, end
}

func (l *GreetingList) View() string {
	props := views.ViewProps{Width: l.width, Height: l.height, Strings: l.Strings, Zones: l.Zones}

	start, end := l.VisibleRange()
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		c, ok := l.cards[i]
		if !ok {
			continue
		}
		rows = append(rows, c.Render(props, i == l.cursor))
	}

	vh := l.viewportHeight()
	lines := strings.Split(lipgloss.JoinVertical(lipgloss.Left, rows...), "\n")
	if len(lines) > vh {
		lines = lines[:vh]
	}
	for len(lines) < vh {
		lines = append(lines, "")
	}

	helpLine := styles.HelpStyle.Render(l.Help.View(l.Keys))
	return strings.Join(lines, "\n") + "\n" + helpLine
}

func (l *GreetingList) viewportHeight() int {
	return max(l.height-helpHeight, 1)
}

func (l *GreetingList) pageStep() int {
	start, end := l.VisibleRange()
	return max(end-start-1, 1)
}

// rowHeight uses the live card when materialised, else the resting height.
func (l *GreetingList) rowHeight(i int) int {
	if c, ok := l.cards[i]; ok {
		return c.Height()
	}
	return views.CardHeight(PaddingRows(PaddingTarget(l.State.IsExpanded(i))))
}

// layout clamps the cursor, scrolls it into view and materialises the window.
func (l *GreetingList) layout() {
	n := l.State.Len()
	if n == 0 {
		l.cursor, l.offset = 0, 0
		clear(l.cards)
		return
	}
	l.cursor = clamp(l.cursor, 0, n-1)
	l.offset = clamp(l.offset, 0, n-1)

	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	vh := l.viewportHeight()
	for l.offset < l.cursor && l.heightBetween(l.offset, l.cursor) > vh {
		l.offset++
	}
	l.materialize()
}

func (l *GreetingList) heightBetween(from, to int) int {
	total := 0
	for i := from; i <= to; i++ {
		total += l.rowHeight(i)
	}
	return total
}

func (l *GreetingList) materialize() {
	start, end := l.VisibleRange()
	for i := range l.cards {
		if i < start || i >= end {
			delete(l.cards, i)
		}
	}
	for i := start; i < end; i++ {
		if _, ok := l.cards[i]; !ok {
			l.cards[i] = NewGreetingCard(i, l.State.Name(i), l.State.IsExpanded(i), l.spring)
		}
	}
}

func (l *GreetingList) startAnimation() tea.Cmd {
	if l.animating {
		return nil
	}
	for _, c := range l.cards {
		if c.Animating() {
			l.animating = true
			return frameCmd(l.fps)
		}
	}
	return nil
}

func (l *GreetingList) advance() tea.Cmd {
	if !l.animating {
		return nil
	}
	moving := false
	for _, c := range l.cards {
		if c.Step() {
			moving = true
		}
	}
	l.layout()
	if !moving {
		l.animating = false
		return nil
	}
	return frameCmd(l.fps)
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
