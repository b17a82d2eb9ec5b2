package components

import (
	"github.com/charmbracelet/lipgloss"

	"coindash/internal/tui/styles"
)

// ErrorBox is the modal transport-error surface. Input handling lives in
// the dashboard model; the box only renders. Retryable indicates that
// acknowledging will re-run the failed operation (cold start).
type ErrorBox struct {
	Message   string
	Retryable bool
}

// Render returns the styled error dialog.
func (e ErrorBox) Render() string {
	title := lipgloss.NewStyle().
		Foreground(styles.StatusError).
		Bold(true).
		Render("Data source error")

	msg := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Render(e.Message)

	hint := "press enter to dismiss"
	if e.Retryable {
		hint = "press enter to retry"
	}
	hintStr := lipgloss.NewStyle().Foreground(styles.TextMuted).Render(hint)

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		msg,
		"",
		hintStr,
	)

	return lipgloss.NewStyle().
		Background(styles.BgPanel).
		Border(styles.DoubleBorder).
		BorderForeground(styles.StatusError).
		Padding(1, 2).
		Width(52).
		Align(lipgloss.Center).
		Render(content)
}
