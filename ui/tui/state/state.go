package state

import (
	"strconv"
	"strings"

	"greetings/internal/savedstate"
)

type Screen int

const (
	ScreenOnboarding Screen = iota
	ScreenGreetings
)

// SlotOnboarding is the restorable slot for the onboarding flag.
const SlotOnboarding = "onboarding.showing"

// ExpandedSlot is the restorable slot for row index's expanded flag.
func ExpandedSlot(index int) string {
	return "greetings." + strconv.Itoa(index) + ".expanded"
}

// DefaultNames returns the display names "0".."n-1".
func DefaultNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = strconv.Itoa(i)
	}
	return names
}

// AppState holds every restorable flag of the UI. All mutation happens on the
// Bubble Tea update loop.
type AppState struct {
	names          []string
	showOnboarding bool
	expanded       map[int]bool
}

// New returns the initial state: onboarding showing, every row collapsed.
func New(names []string) *AppState {
	return &AppState{
		names:          names,
		showOnboarding: true,
		expanded:       make(map[int]bool),
	}
}

// Restore rebuilds state from a saved bundle. Slots missing from the bundle,
// or naming rows outside names, fall back to their defaults.
func Restore(b savedstate.Bundle, names []string) *AppState {
	s := New(names)
	s.showOnboarding = b.Get(SlotOnboarding, true)
	for key, v := range b {
		if !v {
			continue
		}
		if i, ok := parseExpandedSlot(key); ok && i < len(names) {
			s.expanded[i] = true
		}
	}
	return s
}

// Save writes every declared slot. Collapsed rows are elided since
// collapsed is their default.
func (s *AppState) Save() savedstate.Bundle {
	b := savedstate.Bundle{SlotOnboarding: s.showOnboarding}
	for i, v := range s.expanded {
		if v {
			b.Put(ExpandedSlot(i), true)
		}
	}
	return b
}

// Screen reports which top-level view renders.
func (s *AppState) Screen() Screen {
	if s.showOnboarding {
		return ScreenOnboarding
	}
	return ScreenGreetings
}

// ShowOnboarding reports whether the onboarding view is still showing.
func (s *AppState) ShowOnboarding() bool { return s.showOnboarding }

// DismissOnboarding hides onboarding for good. It reports whether anything changed.
func (s *AppState) DismissOnboarding() bool {
	if !s.showOnboarding {
		return false
	}
	s.showOnboarding = false
	return true
}

// Names returns the row display names.
func (s *AppState) Names() []string { return s.names }

// Len is the number of rows.
func (s *AppState) Len() int { return len(s.names) }

// Name returns row i's display name.
func (s *AppState) Name(i int) string { return s.names[i] }

// IsExpanded reports row i's expanded flag.
func (s *AppState) IsExpanded(i int) bool { return s.expanded[i] }

// ToggleExpanded flips row i's flag and returns the new value.
func (s *AppState) ToggleExpanded(i int) bool {
	if i < 0 || i >= len(s.names) {
		return false
	}
	v := !s.expanded[i]
	if v {
		s.expanded[i] = true
	} else {
		delete(s.expanded, i)
	}
	return v
}

func parseExpandedSlot(key string) (int, bool) {
	rest, ok := strings.CutPrefix(key, "greetings.")
	if !ok {
		return 0, false
	}
	num, ok := strings.CutSuffix(rest, ".expanded")
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(num)
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}
