package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"coindash/internal/tui/styles"
)

// LogLine represents a single fetch-activity entry.
type LogLine struct {
	Time    time.Time
	Level   string // "info", "warn", "error", "success"
	Source  string // "PRICES", "TREND", "CONFIG", "DASHBOARD"
	Message string
}

// LogStream is a scrollable activity viewer. It doubles as the cold-start
// loading log and as the backing buffer for the transient log strip shown
// while a fetch is in flight.
type LogStream struct {
	lines      []LogLine
	viewport   viewport.Model
	autoScroll bool
	maxLines   int
}

// NewLogStream creates a LogStream with the given dimensions.
func NewLogStream(width, height int) LogStream {
	vp := viewport.New(width, height)
	vp.Style = lipgloss.NewStyle().Background(styles.BgPanel)
	return LogStream{
		viewport:   vp,
		autoScroll: true,
		maxLines:   200,
	}
}

// Update handles viewport scrolling: manual scroll pauses auto-scroll,
// returning to the bottom resumes it.
func (l LogStream) Update(msg tea.Msg) (LogStream, tea.Cmd) {
	var cmd tea.Cmd
	l.viewport, cmd = l.viewport.Update(msg)
	l.autoScroll = l.viewport.AtBottom()
	return l, cmd
}

// View returns the rendered viewport.
func (l LogStream) View() string {
	title := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Bold(true).
		Render("Activity")
	return title + "\n" + l.viewport.View()
}

// Tail returns the most recent line rendered as a single status strip, or
// "" when the stream is empty.
func (l LogStream) Tail() string {
	if len(l.lines) == 0 {
		return ""
	}
	return renderLine(l.lines[len(l.lines)-1])
}

// Resize rebuilds the viewport dimensions, preserving content.
func (l *LogStream) Resize(width, height int) {
	l.viewport.Width = width
	l.viewport.Height = height
	l.viewport.SetContent(l.renderLines())
	if l.autoScroll {
		l.viewport.GotoBottom()
	}
}

// AddLine appends a log line and refreshes the viewport content.
func (l *LogStream) AddLine(line LogLine) {
	l.lines = append(l.lines, line)
	if len(l.lines) > l.maxLines {
		l.lines = l.lines[len(l.lines)-l.maxLines:]
	}

	l.viewport.SetContent(l.renderLines())
	if l.autoScroll {
		l.viewport.GotoBottom()
	}
}

// Len returns the number of buffered lines.
func (l LogStream) Len() int { return len(l.lines) }

// levelColor returns the foreground color for a log level.
func levelColor(level string) lipgloss.Color {
	switch strings.ToLower(level) {
	case "warn":
		return styles.StatusWarn
	case "error":
		return styles.StatusError
	case "success":
		return styles.PriceUp
	default:
		return styles.TextSecondary
	}
}

// renderLine renders one entry as "HH:MM:SS SOURCE message".
func renderLine(line LogLine) string {
	ts := lipgloss.NewStyle().Foreground(styles.TextMuted).
		Render(line.Time.Format("15:04:05"))
	src := lipgloss.NewStyle().Foreground(styles.AccentSecondary).
		Render(fmt.Sprintf("%-9s", line.Source))
	msg := lipgloss.NewStyle().Foreground(levelColor(line.Level)).
		Render(line.Message)
	return ts + " " + src + " " + msg
}

// renderLines builds the full text content from all buffered lines.
func (l *LogStream) renderLines() string {
	var b strings.Builder
	for _, line := range l.lines {
		b.WriteString(renderLine(line) + "\n")
	}
	return b.String()
}
