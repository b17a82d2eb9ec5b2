package components

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func filledLogStream(n int) LogStream {
	ls := NewLogStream(40, 3)
	for i := 0; i < n; i++ {
		ls.AddLine(LogLine{
			Time:    time.Date(2026, 8, 30, 12, 0, i, 0, time.UTC),
			Level:   "info",
			Source:  "PRICES",
			Message: fmt.Sprintf("line %d", i),
		})
	}
	return ls
}

func TestLogStreamAutoScrollsToNewest(t *testing.T) {
	ls := filledLogStream(20)

	if ls.Len() != 20 {
		t.Fatalf("Len = %d, want 20", ls.Len())
	}
	if !strings.Contains(ls.View(), "line 19") {
		t.Error("viewport is not pinned to the newest line")
	}
	if !strings.Contains(ls.Tail(), "line 19") {
		t.Errorf("Tail = %q, want the newest line", ls.Tail())
	}
}

func TestLogStreamManualScrollPausesAutoScroll(t *testing.T) {
	ls := filledLogStream(20)

	ls, _ = ls.Update(tea.KeyMsg{Type: tea.KeyUp})
	if ls.autoScroll {
		t.Fatal("scrolling up should pause auto-scroll")
	}

	// New lines arrive without yanking the view back to the bottom.
	ls.AddLine(LogLine{Time: time.Now(), Level: "info", Source: "TREND", Message: "line 20"})
	if strings.Contains(ls.View(), "line 20") {
		t.Error("new line jumped the paused viewport to the bottom")
	}
}

func TestLogStreamCapsBuffer(t *testing.T) {
	ls := filledLogStream(250)
	if ls.Len() != 200 {
		t.Errorf("Len = %d, want buffer capped at 200", ls.Len())
	}
	if !strings.Contains(ls.Tail(), "line 249") {
		t.Error("cap dropped the newest line instead of the oldest")
	}
}
