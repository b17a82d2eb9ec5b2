package models

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"coindash/internal/config"
	"coindash/internal/market"
)

func testConfig() *config.Config {
	return &config.Config{
		Exchange:      "coingecko",
		Markets:       []string{"BTC", "ETH"},
		Periods:       []string{"1h", "1d"},
		DefaultPeriod: "1h",
		Poll:          config.PollConfig{PriceSec: 10, TrendSec: 60},
		Table:         config.TableConfig{Header: true},
		Chart:         config.ChartConfig{Legend: true},
	}
}

// update drives one message through Update and returns the next model.
func update(t *testing.T, m Dashboard, msg tea.Msg) Dashboard {
	t.Helper()
	next, _ := m.Update(msg)
	d, ok := next.(Dashboard)
	if !ok {
		t.Fatalf("Update returned %T, want Dashboard", next)
	}
	return d
}

// updateCmd is update but also returns the command.
func updateCmd(t *testing.T, m Dashboard, msg tea.Msg) (Dashboard, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Dashboard), cmd
}

func testPrices() []market.PriceEntry {
	return []market.PriceEntry{
		{Market: "BTC", Price: 65000, Change: 1.2},
		{Market: "ETH", Price: 3200, Change: -0.5},
	}
}

func testTrend(mkt, period string) market.TrendSeries {
	return market.TrendSeries{
		Market: mkt,
		Period: period,
		Points: []market.TrendPoint{
			{Label: "10:00", Close: 64000},
			{Label: "10:30", Close: 64500},
			{Label: "11:00", Close: 65000},
		},
	}
}

func transportErr(op string) error {
	return &market.TransportError{Op: op, Err: errors.New("connection refused")}
}

// coldStarted builds a dashboard that has completed its cold start.
func coldStarted(t *testing.T) Dashboard {
	t.Helper()
	m := NewDashboard(testConfig(), nil, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = update(t, m, startMsg{})
	m = update(t, m, pricesMsg{entries: testPrices(), at: time.Now(), cold: true})
	m = update(t, m, trendMsg{series: testTrend("BTC", "1h"), gen: m.trendGen, cold: true})
	return m
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// ---------------------------------------------------------------------------
// Cold start
// ---------------------------------------------------------------------------

func TestColdStartTransitionsToRunning(t *testing.T) {
	m := coldStarted(t)

	if !m.running {
		t.Fatal("running should be true after both cold fetches succeed")
	}
	if len(m.table.Rows()) != 2 {
		t.Errorf("table has %d rows, want 2", len(m.table.Rows()))
	}
	if m.trend.Market != "BTC" || m.trend.Period != "1h" {
		t.Errorf("trend = %s/%s, want BTC/1h", m.trend.Market, m.trend.Period)
	}
	if m.overlay != overlayNone {
		t.Errorf("overlay = %v, want none after cold start settles", m.overlay)
	}
}

func TestColdStartHalfDoneIsNotRunning(t *testing.T) {
	m := NewDashboard(testConfig(), nil, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = update(t, m, startMsg{})
	m = update(t, m, pricesMsg{entries: testPrices(), at: time.Now(), cold: true})

	if m.running {
		t.Fatal("running must wait for both halves of the cold start")
	}
}

func TestColdStartFailureArmsRetry(t *testing.T) {
	m := NewDashboard(testConfig(), nil, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = update(t, m, startMsg{})
	m = update(t, m, pricesMsg{cold: true, err: transportErr("prices")})

	if m.overlay != overlayError {
		t.Fatalf("overlay = %v, want error", m.overlay)
	}
	if !m.errBox.Retryable {
		t.Error("cold-start failure should be retryable")
	}

	// Acknowledging re-issues the cold fetch.
	m2, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("ack of cold-start failure should produce a retry command")
	}
	if m2.overlay != overlayLog {
		t.Errorf("overlay = %v, want log while retry is in flight", m2.overlay)
	}
}

// ---------------------------------------------------------------------------
// Running invariant
// ---------------------------------------------------------------------------

func TestRunningNeverReverts(t *testing.T) {
	m := coldStarted(t)

	m = update(t, m, pricesMsg{err: transportErr("prices")})
	if !m.running {
		t.Fatal("a refresh failure must not undo running")
	}
	if m.overlay != overlayError {
		t.Errorf("overlay = %v, want error", m.overlay)
	}

	m = update(t, m, trendMsg{gen: m.trendGen, err: transportErr("trend")})
	if !m.running {
		t.Fatal("running reverted after trend failure")
	}
}

// ---------------------------------------------------------------------------
// Stale trend discard
// ---------------------------------------------------------------------------

func TestStaleTrendDiscardedAfterPeriodSwitch(t *testing.T) {
	m := coldStarted(t)
	oldGen := m.trendGen

	m, cmd := updateCmd(t, m, keyRune('2'))
	if m.currentPeriod != "1d" {
		t.Fatalf("currentPeriod = %q, want 1d", m.currentPeriod)
	}
	if cmd == nil {
		t.Fatal("period switch should fetch the trend immediately")
	}

	// A late result from the old selection must not be rendered.
	stale := testTrend("BTC", "1h")
	stale.Points = stale.Points[:1]
	m = update(t, m, trendMsg{series: stale, gen: oldGen})
	if len(m.trend.Points) == 1 {
		t.Fatal("stale trend overwrote the view state")
	}

	// The fresh result for the new selection applies.
	m = update(t, m, trendMsg{series: testTrend("BTC", "1d"), gen: m.trendGen})
	if m.trend.Period != "1d" {
		t.Errorf("trend period = %q, want 1d", m.trend.Period)
	}
}

func TestStaleTrendDiscardedAfterMarketSwitch(t *testing.T) {
	m := coldStarted(t)
	oldGen := m.trendGen

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.currentMarket != "ETH" {
		t.Fatalf("currentMarket = %q, want ETH", m.currentMarket)
	}
	if cmd == nil {
		t.Fatal("market switch should fetch the trend immediately")
	}

	m = update(t, m, trendMsg{series: testTrend("BTC", "1h"), gen: oldGen})
	if m.trend.Market == "BTC" && m.currentMarket == "ETH" && m.trend.Period == "1h" {
		// The cold BTC series is still the last applied one; what matters
		// is that the stale late arrival did not become the new state.
		if len(m.trend.Points) != 3 {
			t.Fatal("stale trend replaced view state")
		}
	}

	m = update(t, m, trendMsg{series: testTrend("ETH", "1h"), gen: m.trendGen})
	if m.trend.Market != "ETH" {
		t.Errorf("trend market = %q, want ETH", m.trend.Market)
	}
}

// ---------------------------------------------------------------------------
// Overlay arbitration
// ---------------------------------------------------------------------------

func TestErrorOverlayPersistsUntilAck(t *testing.T) {
	m := coldStarted(t)
	m = update(t, m, pricesMsg{err: transportErr("prices")})

	// Intervening ticks and key presses do not clear it.
	m = update(t, m, priceTickMsg{sched: m.schedGen})
	if m.overlay != overlayError {
		t.Fatalf("overlay = %v after tick, want error", m.overlay)
	}
	m = update(t, m, keyRune('2'))
	if m.currentPeriod != "1h" {
		t.Error("period keys must be inert while the error overlay is up")
	}
	m = update(t, m, keyRune('?'))
	if m.overlay != overlayError {
		t.Error("help must not displace the error overlay")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.overlay != overlayNone {
		t.Errorf("overlay = %v after ack, want none", m.overlay)
	}
}

func TestErrorWinsOverHelp(t *testing.T) {
	m := coldStarted(t)
	m = update(t, m, keyRune('?'))
	if m.overlay != overlayHelp {
		t.Fatalf("overlay = %v, want help", m.overlay)
	}

	m = update(t, m, trendMsg{gen: m.trendGen, err: transportErr("trend")})
	if m.overlay != overlayError {
		t.Fatalf("overlay = %v, want error even while help was open", m.overlay)
	}
}

func TestQuitClosesHelpFirst(t *testing.T) {
	m := coldStarted(t)
	m = update(t, m, keyRune('?'))

	m = update(t, m, keyRune('q'))
	if m.overlay != overlayNone {
		t.Fatalf("q inside help should close help, overlay = %v", m.overlay)
	}
	if m.quitting {
		t.Fatal("q inside help must not quit")
	}

	m = update(t, m, keyRune('q'))
	if !m.quitting {
		t.Fatal("q outside help should quit")
	}
}

func TestLogOverlayClearsWhenFetchesSettle(t *testing.T) {
	m := coldStarted(t)

	m = update(t, m, priceTickMsg{sched: m.schedGen})
	if m.overlay != overlayLog {
		t.Fatalf("overlay = %v during fetch, want log", m.overlay)
	}

	m = update(t, m, pricesMsg{entries: testPrices(), at: time.Now()})
	if m.overlay != overlayNone {
		t.Errorf("overlay = %v after fetch settled, want none", m.overlay)
	}
}

// ---------------------------------------------------------------------------
// Scheduling
// ---------------------------------------------------------------------------

func TestTickNoopBeforeRunning(t *testing.T) {
	m := NewDashboard(testConfig(), nil, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m2, cmd := updateCmd(t, m, priceTickMsg{sched: m.schedGen})
	if cmd == nil {
		t.Fatal("tick should still re-arm before running")
	}
	if m2.inflight != 0 {
		t.Error("tick before running must not issue a fetch")
	}
}

func TestStaleScheduleTicksDie(t *testing.T) {
	m := coldStarted(t)

	cfg := testConfig()
	cfg.Poll = config.PollConfig{PriceSec: 5, TrendSec: 30}
	m, cmd := updateCmd(t, m, ConfigReloadedMsg{Cfg: cfg})
	if cmd == nil {
		t.Fatal("interval change should re-arm both timers")
	}
	if m.cfg.Poll.PriceSec != 5 {
		t.Errorf("priceSec = %d, want 5", m.cfg.Poll.PriceSec)
	}

	// A tick from the previous schedule must neither fetch nor re-arm.
	m2, cmd := updateCmd(t, m, priceTickMsg{sched: m.schedGen - 1})
	if cmd != nil {
		t.Error("superseded tick re-armed itself")
	}
	if m2.inflight != 0 {
		t.Error("superseded tick issued a fetch")
	}
}

func TestTickKeepsFiringAfterFailure(t *testing.T) {
	m := coldStarted(t)
	m = update(t, m, pricesMsg{err: transportErr("prices")})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // ack

	m2, cmd := updateCmd(t, m, priceTickMsg{sched: m.schedGen})
	if cmd == nil {
		t.Fatal("price tick should fire again after an acknowledged failure")
	}
	if m2.inflight != 1 {
		t.Errorf("inflight = %d, want 1 (fetch issued)", m2.inflight)
	}
}

// ---------------------------------------------------------------------------
// Resize
// ---------------------------------------------------------------------------

func TestResizePreservesState(t *testing.T) {
	m := coldStarted(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, trendMsg{series: testTrend("ETH", "1h"), gen: m.trendGen})

	m = update(t, m, tea.WindowSizeMsg{Width: 140, Height: 50})
	m = update(t, m, resizeFlushMsg{seq: m.resizeSeq})

	if m.currentMarket != "ETH" || m.currentPeriod != "1h" {
		t.Errorf("selection lost on resize: %s/%s", m.currentMarket, m.currentPeriod)
	}
	if len(m.prices) != 2 {
		t.Error("price snapshot lost on resize")
	}
	if m.trend.Market != "ETH" {
		t.Error("trend snapshot lost on resize")
	}
	if m.inflight != 0 {
		t.Error("resize must not trigger a refetch")
	}
}

func TestResizeCoalesces(t *testing.T) {
	m := coldStarted(t)

	m = update(t, m, tea.WindowSizeMsg{Width: 90, Height: 30})
	first := m.resizeSeq
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	// The older flush is ignored; only the newest applies.
	m = update(t, m, resizeFlushMsg{seq: first})
	if m.width != 120 {
		t.Errorf("width = %d, want 120", m.width)
	}
}

// ---------------------------------------------------------------------------
// Input gating
// ---------------------------------------------------------------------------

func TestPeriodKeyBeforeRunningIsNoop(t *testing.T) {
	m := NewDashboard(testConfig(), nil, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m, cmd := updateCmd(t, m, keyRune('2'))
	if m.currentPeriod != "1h" {
		t.Errorf("currentPeriod = %q, want unchanged 1h", m.currentPeriod)
	}
	if cmd != nil {
		t.Error("period key before running must not fetch")
	}
}

func TestUnboundDigitIgnored(t *testing.T) {
	m := coldStarted(t)
	m = update(t, m, keyRune('9'))
	if m.currentPeriod != "1h" {
		t.Errorf("currentPeriod = %q, want 1h", m.currentPeriod)
	}
}

func TestLoadingCursorKeysGoToActivityLog(t *testing.T) {
	m := NewDashboard(testConfig(), nil, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = update(t, m, startMsg{})

	// Before running the table is empty; cursor keys scroll the activity
	// log instead of moving the table cursor.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.table.Cursor() != 0 {
		t.Errorf("table cursor = %d during loading, want 0", m.table.Cursor())
	}
	if m.logView.Len() == 0 {
		t.Fatal("activity log should have the cold-start lines")
	}
}

func TestHelpBodyRenderedOnReflow(t *testing.T) {
	m := NewDashboard(testConfig(), nil, nil)
	if m.helpBody != "" {
		t.Fatal("help body should be empty before the first layout")
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if m.helpBody == "" {
		t.Fatal("reflow should render the help body")
	}
	if !strings.Contains(m.helpBody, "coindash") {
		t.Error("rendered help body is missing the heading")
	}
}

func TestSelectionStaysInsideConfiguredSets(t *testing.T) {
	m := coldStarted(t)

	keys := []tea.KeyMsg{
		keyRune('1'), keyRune('2'), {Type: tea.KeyDown}, {Type: tea.KeyEnter},
		keyRune('1'), {Type: tea.KeyUp}, {Type: tea.KeyEnter}, keyRune('2'),
	}
	for _, k := range keys {
		m = update(t, m, k)

		foundM := false
		for _, mk := range m.markets {
			if mk == m.currentMarket {
				foundM = true
			}
		}
		if !foundM {
			t.Fatalf("currentMarket %q left the configured set", m.currentMarket)
		}
		if !m.exchange.HasPeriod(m.currentPeriod) {
			t.Fatalf("currentPeriod %q left the configured set", m.currentPeriod)
		}
	}
}
