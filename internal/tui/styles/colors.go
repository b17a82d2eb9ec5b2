package styles

import "github.com/charmbracelet/lipgloss"

// Midnight Tape -- Dark Palette
// Deep midnight backgrounds with electric cyan accents; green/red reserved
// for price direction.

var (
	// Backgrounds (darkest to lightest)
	BgDeep    = lipgloss.Color("#0a0e14") // Deepest -- main background
	BgPanel   = lipgloss.Color("#11151c") // Panel/card background
	BgSurface = lipgloss.Color("#1a1f2e") // Elevated surface
	BgHover   = lipgloss.Color("#232a3b") // Selected row

	// Accents
	AccentPrimary   = lipgloss.Color("#4fc1ff") // Cyan -- titles, focused borders
	AccentSecondary = lipgloss.Color("#39c5bb") // Teal -- secondary info
	AccentGold      = lipgloss.Color("#f5a623") // Gold -- selected period

	// Price direction
	PriceUp   = lipgloss.Color("#22c55e") // Green -- gaining
	PriceDown = lipgloss.Color("#ef4444") // Red -- losing

	// Status
	StatusWarn  = lipgloss.Color("#f59e0b") // Amber
	StatusError = lipgloss.Color("#ef4444") // Red

	// Text
	TextPrimary   = lipgloss.Color("#e2e8f0") // High contrast
	TextSecondary = lipgloss.Color("#94a3b8") // Dimmed
	TextMuted     = lipgloss.Color("#64748b") // Very dim

	// Borders
	BorderNormal  = lipgloss.Color("#2d3748") // Subtle
	BorderFocused = lipgloss.Color("#4fc1ff") // Cyan focus ring
)

// Override replaces named palette entries with configured hex values and
// rebuilds the styles derived from them.
// Recognized names: accent, up, down, warn, error, text, muted, border.
func Override(colors map[string]string) {
	defer rebuildTheme()
	for name, hex := range colors {
		if hex == "" {
			continue
		}
		c := lipgloss.Color(hex)
		switch name {
		case "accent":
			AccentPrimary = c
			BorderFocused = c
		case "up":
			PriceUp = c
		case "down":
			PriceDown = c
			StatusError = c
		case "warn":
			StatusWarn = c
		case "text":
			TextPrimary = c
		case "muted":
			TextMuted = c
		case "border":
			BorderNormal = c
		}
	}
}
