package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"coindash/internal/market"
	"coindash/internal/tui/styles"
)

// Header renders the app header bar: exchange, selected market/period, and
// the timestamp of the last successful price snapshot.
type Header struct {
	Exchange   string
	Market     string
	Period     string
	LastUpdate time.Time
	Width      int
}

// Render returns the styled header string.
func (h Header) Render() string {
	width := h.Width
	if width <= 0 {
		width = 80
	}

	logo := lipgloss.NewStyle().
		Foreground(styles.AccentPrimary).
		Bold(true).
		Render("◢ coindash")

	sep := lipgloss.NewStyle().Foreground(styles.TextMuted).Render("  │  ")

	exchange := styles.Label.Render("Exchange: ") +
		lipgloss.NewStyle().Foreground(styles.AccentSecondary).Bold(true).
			Render(strings.ToUpper(h.Exchange))

	selected := styles.Label.Render("Market: ") +
		lipgloss.NewStyle().Foreground(styles.AccentGold).Bold(true).Render(h.Market) +
		styles.Label.Render("  Period: ") +
		lipgloss.NewStyle().Foreground(styles.AccentGold).Bold(true).
			Render(market.PeriodLabel(h.Period))

	updated := styles.Label.Render("Updated: ") +
		styles.Value.Render(market.LastUpdateLabel(h.LastUpdate))

	content := logo + sep + exchange + sep + selected + sep + updated

	return lipgloss.NewStyle().
		Background(styles.BgDeep).
		Foreground(styles.TextPrimary).
		Width(width).
		PaddingLeft(1).
		PaddingRight(1).
		Render(content)
}
