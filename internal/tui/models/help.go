package models

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"coindash/internal/tui/styles"
)

// helpMarkdown is the help overlay body. Rendered through glamour so the
// overlay reads like a page rather than a key dump; the live bindings
// listing is appended from the keymap at render time.
const helpMarkdown = `# coindash

A live market dashboard. The table tracks current prices for your
configured markets; the chart shows the trend for the selected market
and period.

## Moving around

Use the arrow keys to move the table cursor and **enter** to make the
highlighted market the chart's subject. The number keys switch the trend
period; both actions fetch fresh trend data immediately.

Prices and the trend refresh on their own schedules in the background.
A failed refresh shows an error box; acknowledge it with **enter** and
the next scheduled refresh carries on.

Press **?** again, **q**, or **esc** to close this help.
`

// renderHelpBody renders the markdown body for the given width. Called
// from reflow so the glamour renderer runs once per resize, not per frame.
// Falls back to the raw markdown if the renderer cannot be built.
func renderHelpBody(width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}

// renderHelp appends the live binding listing to the pre-rendered body.
func renderHelp(body, helpView string) string {
	bindings := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Render(helpView)
	return lipgloss.JoinVertical(lipgloss.Left, body, bindings)
}
