package styles

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// brailleRamp maps normalized 0..7 buckets to braille bar characters.
var brailleRamp = []rune{'⡀', '⡄', '⡆', '⡇', '⣇', '⣧', '⣷', '⣿'}

// Sparkline produces a compact braille bar chart that fits in width
// columns, colored by overall direction (first vs last value). Used in the
// chart legend. Empty input or non-positive width yields an empty string.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	// Resample to requested width using nearest-neighbour.
	sampled := make([]float64, width)
	for i := range width {
		idx := i * len(values) / width
		if idx >= len(values) {
			idx = len(values) - 1
		}
		sampled[i] = values[idx]
	}

	lo, hi := sampled[0], sampled[0]
	for _, v := range sampled {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	span := hi - lo
	if span == 0 {
		span = 1 // all values identical
	}

	var b strings.Builder
	b.Grow(width * 4)
	for _, v := range sampled {
		norm := (v - lo) / span
		bucket := int(math.Round(norm * float64(len(brailleRamp)-1)))
		if bucket < 0 {
			bucket = 0
		}
		if bucket >= len(brailleRamp) {
			bucket = len(brailleRamp) - 1
		}
		b.WriteRune(brailleRamp[bucket])
	}

	color := AccentPrimary
	if last := values[len(values)-1]; last > values[0] {
		color = PriceUp
	} else if last < values[0] {
		color = PriceDown
	}
	return lipgloss.NewStyle().Foreground(color).Render(b.String())
}
