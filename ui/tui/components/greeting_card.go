package components

import (
	"math"

	"greetings/ui/tui/views"

	"github.com/charmbracelet/harmonica"
)

// GreetingCard is a materialised greeting row. It owns the animated padding;
// the expanded flag itself lives in the app state.
type GreetingCard struct {
	Index    int
	Name     string
	Expanded bool
	Padding  float64
	Velocity float64

	spring harmonica.Spring
}

// NewGreetingCard creates a card already at rest at its target padding.
func NewGreetingCard(index int, name string, expanded bool, spring harmonica.Spring) *GreetingCard {
	return &GreetingCard{
		Index:    index,
		Name:     name,
		Expanded: expanded,
		Padding:  PaddingTarget(expanded),
		spring:   spring,
	}
}

// SetExpanded retargets the padding animation. Motion continues from the
// current position and velocity.
func (c *GreetingCard) SetExpanded(expanded bool) {
	c.Expanded = expanded
}

// Target is the padding the card is springing towards.
func (c *GreetingCard) Target() float64 {
	return PaddingTarget(c.Expanded)
}

// Animating reports whether the card has not yet come to rest.
func (c *GreetingCard) Animating() bool {
	return math.Abs(c.Padding-c.Target()) > settleEpsilon || math.Abs(c.Velocity) > settleEpsilon
}

// Step advances the spring by one frame and reports whether it is still moving.
func (c *GreetingCard) Step() bool {
	if !c.Animating() {
		c.Padding, c.Velocity = c.Target(), 0
		return false
	}
	c.Padding, c.Velocity = c.spring.Update(c.Padding, c.Velocity, c.Target())
	if !c.Animating() {
		c.Padding, c.Velocity = c.Target(), 0
		return false
	}
	return true
}

// PaddingRows is the clamped padding used for layout.
func (c *GreetingCard) PaddingRows() int {
	return PaddingRows(c.Padding)
}

// Height is the rendered height of the card in rows.
func (c *GreetingCard) Height() int {
	return views.CardHeight(c.PaddingRows())
}

// Render draws the card.
func (c *GreetingCard) Render(props views.ViewProps, focused bool) string {
	return views.RenderGreetingCard(views.CardProps{
		ViewProps:   props,
		Index:       c.Index,
		Name:        c.Name,
		Expanded:    c.Expanded,
		PaddingRows: c.PaddingRows(),
		Focused:     focused,
	})
}
