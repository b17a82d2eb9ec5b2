package views

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestApplyColorProfile(t *testing.T) {
	orig := lipgloss.ColorProfile()
	defer lipgloss.SetColorProfile(orig)

	applyColorProfile(false)
	if got := lipgloss.ColorProfile(); got != orig {
		t.Errorf("profile = %v without no-color, want unchanged %v", got, orig)
	}

	applyColorProfile(true)
	if got := lipgloss.ColorProfile(); got != termenv.Ascii {
		t.Errorf("profile = %v with no-color, want Ascii", got)
	}
}

func TestWatchPath(t *testing.T) {
	if got := watchPath("custom.json"); got != "custom.json" {
		t.Errorf("watchPath = %q, want the named file", got)
	}
	// No named file and no ./config.json on disk in the test cwd.
	if got := watchPath(""); got != "" {
		t.Errorf("watchPath = %q, want empty when nothing exists", got)
	}
}
