package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"coindash/internal/tui/styles"
)

// KeyHint describes a single keybinding hint for display in the footer.
type KeyHint struct {
	Key  string // "q", "1-5", "enter"
	Desc string // "quit", "period", "select"
}

// Footer renders context-aware keybinding hints.
type Footer struct {
	Hints []KeyHint
	Width int
}

// Render returns the styled footer string.
func (f Footer) Render() string {
	width := f.Width
	if width <= 0 {
		width = 80
	}

	keyStyle := lipgloss.NewStyle().Foreground(styles.AccentPrimary).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	sepStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	var parts []string
	for _, h := range f.Hints {
		parts = append(parts, keyStyle.Render(h.Key)+" "+descStyle.Render(h.Desc))
	}

	content := strings.Join(parts, sepStyle.Render(" • "))

	return lipgloss.NewStyle().
		Background(styles.BgDeep).
		Foreground(styles.TextMuted).
		Width(width).
		PaddingLeft(1).
		PaddingRight(1).
		Render(content)
}

// DashboardFooter returns the footer for normal operation. periodCount
// determines the digit-range hint.
func DashboardFooter(width, periodCount int) Footer {
	periodKey := "1"
	if periodCount > 1 {
		periodKey = fmt.Sprintf("1-%d", periodCount)
	}
	return Footer{
		Hints: []KeyHint{
			{Key: "↑↓", Desc: "navigate"},
			{Key: "enter", Desc: "select market"},
			{Key: periodKey, Desc: "period"},
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
		Width: width,
	}
}

// ErrorFooter returns the footer shown while the error overlay is active.
func ErrorFooter(width int) Footer {
	return Footer{
		Hints: []KeyHint{
			{Key: "enter", Desc: "acknowledge"},
			{Key: "q", Desc: "quit"},
		},
		Width: width,
	}
}

// HelpFooter returns the footer shown while the help overlay is active.
func HelpFooter(width int) Footer {
	return Footer{
		Hints: []KeyHint{
			{Key: "q/esc/?", Desc: "close help"},
		},
		Width: width,
	}
}
