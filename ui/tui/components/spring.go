package components

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Spring parameters for the expand animation, named after the Material
// presets they reproduce. Unit mass, so angular frequency is sqrt(stiffness).
const (
	DampingRatioMediumBouncy = 0.5
	StiffnessLow             = 200.0

	// ExpandedPadding is the extra bottom padding, in rows, of an expanded card.
	ExpandedPadding = 3.0

	settleEpsilon = 0.01
)

// NewPaddingSpring precomputes the padding spring for the given frame rate.
func NewPaddingSpring(fps int) harmonica.Spring {
	return harmonica.NewSpring(harmonica.FPS(fps), math.Sqrt(StiffnessLow), DampingRatioMediumBouncy)
}

// PaddingTarget is the resting padding for the given expanded flag.
func PaddingTarget(expanded bool) float64 {
	if expanded {
		return ExpandedPadding
	}
	return 0
}

// PaddingRows converts an animated padding value to whole rows, never negative.
func PaddingRows(padding float64) int {
	return int(math.Round(math.Max(padding, 0)))
}
