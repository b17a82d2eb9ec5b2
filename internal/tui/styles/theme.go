package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ---------------------------------------------------------------------------
// Derived styles
// ---------------------------------------------------------------------------
//
// Composite styles built from the palette. They are rebuilt by Override so
// configured color overrides reach styles derived before config load.

var (
	// Panel is the default panel style: BgPanel background, rounded border
	// in BorderNormal, horizontal padding.
	Panel lipgloss.Style

	// PanelFocused is identical to Panel but uses the cyan focus border.
	PanelFocused lipgloss.Style

	// Title is bold AccentPrimary text for section headings.
	Title lipgloss.Style

	// Label is TextMuted text for field labels.
	Label lipgloss.Style

	// Value is bold TextPrimary text for data values.
	Value lipgloss.Style
)

func init() { rebuildTheme() }

// rebuildTheme derives the composite styles from the current palette vars.
func rebuildTheme() {
	Panel = lipgloss.NewStyle().
		Background(BgPanel).
		Border(RoundedBorder).
		BorderForeground(BorderNormal).
		Padding(0, 1)

	PanelFocused = lipgloss.NewStyle().
		Background(BgPanel).
		Border(RoundedBorder).
		BorderForeground(BorderFocused).
		Padding(0, 1)

	Title = lipgloss.NewStyle().
		Foreground(AccentPrimary).
		Bold(true)

	Label = lipgloss.NewStyle().
		Foreground(TextMuted)

	Value = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// ChangeStyle returns the direction style for a signed percentage change.
func ChangeStyle(change float64) lipgloss.Style {
	switch {
	case change > 0:
		return lipgloss.NewStyle().Foreground(PriceUp)
	case change < 0:
		return lipgloss.NewStyle().Foreground(PriceDown)
	default:
		return lipgloss.NewStyle().Foreground(TextSecondary)
	}
}

// Dim renders s in TextMuted.
func Dim(s string) string {
	return lipgloss.NewStyle().Foreground(TextMuted).Render(s)
}

// Divider returns a horizontal rule of the given width rendered in
// BorderNormal color.
func Divider(width int) string {
	if width <= 0 {
		return ""
	}
	line := strings.Repeat("─", width)
	return lipgloss.NewStyle().Foreground(BorderNormal).Render(line)
}
