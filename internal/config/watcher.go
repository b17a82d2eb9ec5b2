package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors the config file for changes and emits freshly loaded
// configs. Editors typically replace files on save, so the watch is placed
// on the containing directory and filtered by name.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

// NewWatcher creates a watcher for the given config file path.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch directory %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		watcher:  fsw,
		debounce: 300 * time.Millisecond,
	}, nil
}

// Watch starts watching and returns a channel of reloaded configs.
// Write bursts within the debounce window coalesce to a single reload;
// configs that fail to load or validate are dropped silently (the running
// dashboard keeps its last good config). The channel is closed when the
// context is cancelled.
func (w *Watcher) Watch(ctx context.Context) <-chan *Config {
	out := make(chan *Config, 1)

	go func() {
		defer close(out)
		defer w.watcher.Close()

		var timer *time.Timer
		var fire <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != w.path {
					continue
				}
				if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(w.debounce)
				} else {
					timer.Reset(w.debounce)
				}
				fire = timer.C

			case <-fire:
				fire = nil
				cfg, err := Load(w.path)
				if err != nil {
					continue
				}
				select {
				case out <- cfg:
				case <-ctx.Done():
					return
				}

			case _, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return out
}
