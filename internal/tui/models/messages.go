package models

import (
	"time"

	"coindash/internal/config"
	"coindash/internal/market"
)

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------
//
// Every async completion comes back into Update as one of these typed
// messages; nothing outside Update mutates the model.

// startMsg kicks off the cold start after the program begins.
type startMsg struct{}

// pricesMsg delivers the result of a current-price fetch.
type pricesMsg struct {
	entries []market.PriceEntry
	at      time.Time
	cold    bool
	err     error
}

// trendMsg delivers the result of a trend fetch. gen is the request
// generation the fetch was issued under; results from superseded
// generations are discarded rather than rendered.
type trendMsg struct {
	series market.TrendSeries
	gen    uint64
	cold   bool
	err    error
}

// priceTickMsg and trendTickMsg fire on the two independent poll cadences.
// sched ties a tick to the schedule generation that armed it, so timers
// from a superseded schedule die instead of re-arming.
type priceTickMsg struct{ sched uint64 }

type trendTickMsg struct{ sched uint64 }

// resizeFlushMsg coalesces window-size bursts; only the newest seq reflows.
type resizeFlushMsg struct{ seq int }

// ConfigReloadedMsg carries a hot-reloaded config from the file watcher.
type ConfigReloadedMsg struct{ Cfg *config.Config }
