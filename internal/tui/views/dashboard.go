package views

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"

	"coindash/internal/config"
	"coindash/internal/market"
	"coindash/internal/tui/models"
	"coindash/internal/tui/styles"
)

// Run launches the full-screen dashboard TUI.
//
// It loads config, builds the data-source client, starts the config file
// watcher for hot interval reloads, and runs a Bubble Tea program in
// alt-screen mode. A nil return is a clean user quit; an internal
// invariant violation surfaces as the returned error.
func Run(cfgPath string, verbose, noColor bool) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	log := newLogger(cfg.LogFile, verbose)
	applyColorProfile(noColor)
	styles.Override(cfg.Colors)

	client := market.NewClient(cfg.APIBase, log)
	model := models.NewDashboard(cfg, client, log)

	p := tea.NewProgram(model, tea.WithAltScreen())

	// Hot-reload poll intervals while the TUI runs. A watcher failure is
	// not fatal; the dashboard just keeps its startup config.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if path := watchPath(cfgPath); path != "" {
		if w, werr := config.NewWatcher(path); werr == nil {
			reloads := w.Watch(ctx)
			go func() {
				for cfg := range reloads {
					p.Send(models.ConfigReloadedMsg{Cfg: cfg})
				}
			}()
		} else {
			log.WithError(werr).Warn("config watcher unavailable")
		}
	}

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	if d, ok := final.(models.Dashboard); ok && d.FatalErr() != nil {
		return d.FatalErr()
	}
	return nil
}

// applyColorProfile forces monochrome rendering when color is disabled.
func applyColorProfile(noColor bool) {
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// watchPath resolves which file the config watcher should follow, or ""
// when there is nothing on disk to watch.
func watchPath(cfgPath string) string {
	if cfgPath != "" {
		return cfgPath
	}
	if _, err := os.Stat("config.json"); err == nil {
		return "config.json"
	}
	return ""
}

// newLogger builds the file-backed diagnostic logger. Stdout belongs to
// the TUI, so logs go to cfg.LogFile; if the file cannot be opened the
// logger is silenced rather than corrupting the screen.
func newLogger(path string, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return log
	}
	log.SetOutput(f)
	return log
}
