package models

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"coindash/internal/config"
	"coindash/internal/market"
	"coindash/internal/tui/components"
	"coindash/internal/tui/styles"
)

// ---------------------------------------------------------------------------
// Overlay state
// ---------------------------------------------------------------------------

// overlay enumerates the modal-like surfaces. At most one is active; the
// precedence rules live in Update: error displaces anything and must be
// acknowledged, help toggles freely outside of error, log is transient and
// never blocks input.
type overlay int

const (
	overlayNone overlay = iota
	overlayLog
	overlayError
	overlayHelp
)

// resizeDebounce coalesces window-size bursts into a single reflow.
const resizeDebounce = 360 * time.Millisecond

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

// Dashboard is the full-screen Bubble Tea model. It owns all view state:
// the selected market and period, the latest successful price and trend
// snapshots, the running flag, and the active overlay. Two independent
// tick cycles keep the data fresh; all fetch results and input events pass
// through Update, so state mutation is single-threaded by construction.
type Dashboard struct {
	cfg      *config.Config
	exchange market.Exchange
	markets  []string
	source   market.DataSource
	log      *logrus.Entry

	// Components
	table    table.Model
	spin     spinner.Model
	logView  components.LogStream
	helpView help.Model
	keys     keyMap

	// Data
	prices     []market.PriceEntry
	trend      market.TrendSeries
	lastUpdate time.Time

	// Selection
	currentMarket string
	currentPeriod string

	// State machine
	running      bool
	coldPricesOK bool
	coldTrendOK  bool
	overlay      overlay
	errBox       components.ErrorBox
	retryCold    bool
	inflight     int

	// Generations guarding stale async results
	trendGen uint64
	schedGen uint64

	// Layout
	width     int
	height    int
	ready     bool
	resizeSeq int
	helpBody  string

	quitting bool
	fatalErr error
}

// NewDashboard creates a Dashboard wired to the given config and data
// source. log may be nil.
func NewDashboard(cfg *config.Config, source market.DataSource, log *logrus.Logger) Dashboard {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	exchange := market.Exchange{
		Name:          cfg.Exchange,
		Periods:       cfg.Periods,
		DefaultPeriod: cfg.DefaultPeriod,
	}

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.AccentPrimary)),
	)

	hv := help.New()
	hv.ShowAll = true

	m := Dashboard{
		cfg:           cfg,
		exchange:      exchange,
		markets:       cfg.Markets,
		source:        source,
		log:           log.WithField("module", "dashboard"),
		spin:          sp,
		logView:       components.NewLogStream(60, 10),
		helpView:      hv,
		keys:          newKeyMap(cfg.Periods),
		currentMarket: cfg.Markets[0],
		currentPeriod: exchange.DefaultPeriod,
	}
	m.table = m.newTable()
	return m
}

// Init starts the spinner and triggers the cold start.
func (m Dashboard) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		func() tea.Msg { return startMsg{} },
	)
}

// FatalErr exposes an internal invariant violation to the caller after the
// program exits; nil means a clean user quit.
func (m Dashboard) FatalErr() error { return m.fatalErr }

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

// fetchPricesCmd fetches the snapshot for all markets.
func (m *Dashboard) fetchPricesCmd(cold bool) tea.Cmd {
	src, mkts := m.source, m.markets
	return func() tea.Msg {
		entries, err := src.CurrentPrices(context.Background(), mkts)
		return pricesMsg{entries: entries, at: time.Now(), cold: cold, err: err}
	}
}

// fetchTrendCmd fetches the trend for the current selection, stamped with
// the given request generation.
func (m *Dashboard) fetchTrendCmd(cold bool, gen uint64) tea.Cmd {
	src, mkt, period := m.source, m.currentMarket, m.currentPeriod
	return func() tea.Msg {
		series, err := src.Trend(context.Background(), mkt, period)
		return trendMsg{series: series, gen: gen, cold: cold, err: err}
	}
}

// priceTickCmd arms the next price tick under the current schedule.
func (m *Dashboard) priceTickCmd() tea.Cmd {
	sched := m.schedGen
	return tea.Tick(time.Duration(m.cfg.Poll.PriceSec)*time.Second, func(time.Time) tea.Msg {
		return priceTickMsg{sched: sched}
	})
}

// trendTickCmd arms the next trend tick under the current schedule.
func (m *Dashboard) trendTickCmd() tea.Cmd {
	sched := m.schedGen
	return tea.Tick(time.Duration(m.cfg.Poll.TrendSec)*time.Second, func(time.Time) tea.Msg {
		return trendTickMsg{sched: sched}
	})
}

// issueColdFetch issues the combined price+trend cold fetch. Called at
// startup and again when a cold-start failure is acknowledged.
func (m *Dashboard) issueColdFetch() tea.Cmd {
	m.trendGen++
	m.inflight += 2
	m.showLog()
	m.addLog("info", "DASHBOARD", "loading market data...")
	return tea.Batch(m.fetchPricesCmd(true), m.fetchTrendCmd(true, m.trendGen))
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

// Update is the single dispatch point for timers, fetch results, input,
// resize, and config reloads.
func (m Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startMsg:
		// Arm both periodic timers alongside the cold fetch. Ticks no-op
		// until running, so the order does not matter.
		cmd := tea.Batch(m.issueColdFetch(), m.priceTickCmd(), m.trendTickCmd())
		return m, cmd

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if !m.ready {
			m.ready = true
			m.reflow()
			return m, nil
		}
		m.resizeSeq++
		seq := m.resizeSeq
		return m, tea.Tick(resizeDebounce, func(time.Time) tea.Msg {
			return resizeFlushMsg{seq: seq}
		})

	case resizeFlushMsg:
		// Only the newest stamp rebuilds; no refetch, the widgets are
		// relaid out from the state already in hand.
		if msg.seq == m.resizeSeq {
			m.reflow()
		}
		return m, nil

	case spinner.TickMsg:
		if m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case priceTickMsg:
		if msg.sched != m.schedGen {
			return m, nil // superseded schedule
		}
		cmds := []tea.Cmd{m.priceTickCmd()}
		if m.running {
			m.inflight++
			m.showLog()
			m.addLog("info", "PRICES", "refreshing prices")
			cmds = append(cmds, m.fetchPricesCmd(false))
		}
		return m, tea.Batch(cmds...)

	case trendTickMsg:
		if msg.sched != m.schedGen {
			return m, nil
		}
		cmds := []tea.Cmd{m.trendTickCmd()}
		if m.running {
			m.inflight++
			m.showLog()
			m.addLog("info", "TREND", fmt.Sprintf("refreshing %s/%s trend", m.currentMarket, m.currentPeriod))
			cmds = append(cmds, m.fetchTrendCmd(false, m.trendGen))
		}
		return m, tea.Batch(cmds...)

	case pricesMsg:
		return m.applyPrices(msg)

	case trendMsg:
		return m.applyTrend(msg)

	case ConfigReloadedMsg:
		cmd := m.applyConfig(msg.Cfg)
		return m, cmd

	case tea.KeyMsg:
		return m.routeKey(msg)
	}

	return m, nil
}

// applyPrices folds a price fetch result into view state.
func (m Dashboard) applyPrices(msg pricesMsg) (tea.Model, tea.Cmd) {
	m.fetchDone()
	if msg.err != nil {
		return m.failFetch("PRICES", msg.cold, msg.err)
	}

	m.prices = msg.entries
	m.lastUpdate = msg.at
	m.table.SetRows(m.tableRows())
	m.addLog("success", "PRICES", fmt.Sprintf("updated %d markets", len(msg.entries)))

	if msg.cold {
		m.coldPricesOK = true
		m.maybeRunning()
	}
	return m, nil
}

// applyTrend folds a trend fetch result into view state. Results that no
// longer match the current selection, or that carry a superseded request
// generation, are discarded rather than rendered.
func (m Dashboard) applyTrend(msg trendMsg) (tea.Model, tea.Cmd) {
	m.fetchDone()
	if msg.err != nil {
		return m.failFetch("TREND", msg.cold, msg.err)
	}

	if msg.gen != m.trendGen ||
		msg.series.Market != m.currentMarket ||
		msg.series.Period != m.currentPeriod {
		m.addLog("info", "TREND", fmt.Sprintf("discarded stale trend for %s/%s",
			msg.series.Market, msg.series.Period))
		return m, nil
	}

	m.trend = msg.series
	m.addLog("success", "TREND", fmt.Sprintf("updated %s/%s trend (%d points)",
		msg.series.Market, msg.series.Period, len(msg.series.Points)))

	if msg.cold {
		m.coldTrendOK = true
		m.maybeRunning()
	}
	return m, nil
}

// failFetch converts a fetch failure into overlay state. Transport errors
// are recoverable; anything else is an internal error and terminates.
func (m Dashboard) failFetch(source string, cold bool, err error) (tea.Model, tea.Cmd) {
	if !market.IsTransport(err) {
		m.fatalErr = err
		m.log.WithError(err).Error("internal error")
		return m, tea.Quit
	}

	m.addLog("error", source, err.Error())
	m.log.WithError(err).WithField("source", source).Warn("fetch failed")

	m.errBox = components.ErrorBox{Message: err.Error(), Retryable: cold}
	m.retryCold = m.retryCold || cold
	m.overlay = overlayError // error wins over log and help
	return m, nil
}

// maybeRunning performs the one-way false -> true transition once both
// halves of the cold start have landed.
func (m *Dashboard) maybeRunning() {
	if m.running || !m.coldPricesOK || !m.coldTrendOK {
		return
	}
	m.running = true
	m.addLog("success", "DASHBOARD", "dashboard running")
	m.log.Info("cold start complete")
}

// applyConfig folds a hot-reloaded config in. Poll cadences and
// presentation flags apply live; market and period lists would invalidate
// the current selection and require a restart.
func (m *Dashboard) applyConfig(cfg *config.Config) tea.Cmd {
	if !equalStrings(cfg.Markets, m.cfg.Markets) || !equalStrings(cfg.Periods, m.cfg.Periods) {
		m.addLog("warn", "CONFIG", "market/period changes take effect on restart")
	}

	rescheduled := cfg.Poll != m.cfg.Poll
	m.cfg.Poll = cfg.Poll
	m.cfg.Table = cfg.Table
	m.cfg.Chart = cfg.Chart
	m.table.SetColumns(m.tableColumns(m.tableWidth()))

	if !rescheduled {
		return nil
	}
	return m.reschedule()
}

// reschedule cancels both periodic timers and re-arms them at the current
// cadences. Bumping the schedule generation is the cancellation: ticks
// from the old schedule are ignored and do not re-arm.
func (m *Dashboard) reschedule() tea.Cmd {
	m.schedGen++
	m.addLog("info", "CONFIG", fmt.Sprintf("poll intervals now %ds/%ds",
		m.cfg.Poll.PriceSec, m.cfg.Poll.TrendSec))
	return tea.Batch(m.priceTickCmd(), m.trendTickCmd())
}

// ---------------------------------------------------------------------------
// Input routing
// ---------------------------------------------------------------------------

// routeKey maps key events to actions, gated by the active overlay and the
// running flag. Quit is always live; while the error overlay is up, only
// quit and acknowledge are processed.
func (m Dashboard) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.overlay {
	case overlayError:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Ack) {
			m.overlay = overlayNone
			if m.retryCold {
				m.retryCold = false
				cmd := m.issueColdFetch()
				return m, cmd
			}
		}
		return m, nil

	case overlayHelp:
		// The quit key closes help instead of exiting.
		if key.Matches(msg, m.keys.Quit) || key.Matches(msg, m.keys.Help) {
			m.overlay = overlayNone
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.overlay = overlayHelp
		return m, nil

	case key.Matches(msg, m.keys.Select):
		return m.selectCursorMarket()
	}

	for i, b := range m.keys.Periods {
		if key.Matches(msg, b) {
			return m.selectPeriod(m.exchange.Periods[i])
		}
	}

	// Everything else (cursor movement) goes to the table, or to the
	// activity log while the dashboard is still loading.
	var cmd tea.Cmd
	if !m.running {
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// selectCursorMarket makes the highlighted table row the chart's market
// and refetches the trend immediately.
func (m Dashboard) selectCursorMarket() (tea.Model, tea.Cmd) {
	if !m.running {
		return m, nil
	}

	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.markets) {
		m.fatalErr = fmt.Errorf("table cursor %d outside market list", idx)
		return m, tea.Quit
	}
	name := m.markets[idx]
	if name == m.currentMarket {
		return m, nil
	}

	m.currentMarket = name
	m.trendGen++
	m.inflight++
	m.showLog()
	m.addLog("info", "TREND", fmt.Sprintf("fetching %s/%s trend", name, m.currentPeriod))
	return m, m.fetchTrendCmd(false, m.trendGen)
}

// selectPeriod switches the trend period and refetches immediately,
// independent of the periodic trend timer.
func (m Dashboard) selectPeriod(period string) (tea.Model, tea.Cmd) {
	if !m.running {
		return m, nil
	}
	if !m.exchange.HasPeriod(period) {
		m.fatalErr = fmt.Errorf("period %q not supported by %s", period, m.exchange.Name)
		return m, tea.Quit
	}
	if period == m.currentPeriod {
		return m, nil
	}

	m.currentPeriod = period
	m.trendGen++
	m.inflight++
	m.showLog()
	m.addLog("info", "TREND", fmt.Sprintf("fetching %s/%s trend", m.currentMarket, period))
	return m, m.fetchTrendCmd(false, m.trendGen)
}

// ---------------------------------------------------------------------------
// Overlay helpers
// ---------------------------------------------------------------------------

// showLog raises the transient log overlay, but never displaces an active
// error or help surface.
func (m *Dashboard) showLog() {
	if m.overlay == overlayNone {
		m.overlay = overlayLog
	}
}

// fetchDone books one completed fetch and drops the log overlay once no
// fetches remain in flight.
func (m *Dashboard) fetchDone() {
	if m.inflight > 0 {
		m.inflight--
	}
	if m.inflight == 0 && m.overlay == overlayLog {
		m.overlay = overlayNone
	}
}

// addLog appends a line to the activity stream.
func (m *Dashboard) addLog(level, source, message string) {
	m.logView.AddLine(components.LogLine{
		Time:    time.Now(),
		Level:   level,
		Source:  source,
		Message: message,
	})
}

// ---------------------------------------------------------------------------
// Table
// ---------------------------------------------------------------------------

// newTable builds the price table widget.
func (m *Dashboard) newTable() table.Model {
	s := table.DefaultStyles()
	s.Header = s.Header.
		Foreground(styles.TextSecondary).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.BorderNormal).
		BorderBottom(true)
	s.Selected = s.Selected.
		Foreground(styles.TextPrimary).
		Background(styles.BgHover).
		Bold(true)

	t := table.New(
		table.WithColumns(m.tableColumns(40)),
		table.WithFocused(true),
		table.WithHeight(len(m.markets)+1),
		table.WithStyles(s),
	)
	return t
}

// tableColumns sizes the three columns for the given total width. The
// header flag empties the titles rather than dropping the row, keeping the
// widget layout stable.
func (m *Dashboard) tableColumns(width int) []table.Column {
	mw := width * 2 / 5
	pw := width * 2 / 5
	cw := width - mw - pw
	titles := []string{"Market", "Price (USD)", "24h"}
	if !m.cfg.Table.Header {
		titles = []string{"", "", ""}
	}
	return []table.Column{
		{Title: titles[0], Width: mw},
		{Title: titles[1], Width: pw},
		{Title: titles[2], Width: cw},
	}
}

// tableRows renders the price snapshot, one row per market in list order.
func (m *Dashboard) tableRows() []table.Row {
	rows := make([]table.Row, len(m.prices))
	for i, e := range m.prices {
		arrow := " "
		if e.Change > 0 {
			arrow = "▲"
		} else if e.Change < 0 {
			arrow = "▼"
		}
		rows[i] = table.Row{
			e.Market,
			market.FormatPrice(e.Price),
			arrow + " " + market.FormatChange(e.Change),
		}
	}
	return rows
}

// ---------------------------------------------------------------------------
// Layout
// ---------------------------------------------------------------------------

// tableWidth returns the inner width available to table columns.
func (m *Dashboard) tableWidth() int {
	w := m.width - 6 // panel border + padding
	if w < 30 {
		w = 30
	}
	return w
}

// chartSize returns the trend chart dimensions given the current layout.
func (m *Dashboard) chartSize() (int, int) {
	w := m.width - 6
	if w < 20 {
		w = 20
	}
	// header + footer + table panel + legend + log strip
	h := m.height - (len(m.markets) + 10)
	if m.cfg.Chart.Legend {
		h--
	}
	if h < 6 {
		h = 6
	}
	return w, h
}

// reflow recalculates widget dimensions after a terminal resize. It never
// refetches: table, chart, and log are rebuilt from the snapshots in hand,
// and the selection survives untouched.
func (m *Dashboard) reflow() {
	m.table.SetColumns(m.tableColumns(m.tableWidth()))
	m.table.SetWidth(m.tableWidth())
	m.table.SetHeight(len(m.markets) + 1)
	m.table.SetRows(m.tableRows())

	logW := m.width - 8
	logH := m.height / 3
	if logW < 20 {
		logW = 20
	}
	if logH < 4 {
		logH = 4
	}
	m.logView.Resize(logW, logH)

	m.helpView.Width = m.width
	m.helpBody = renderHelpBody(m.width)
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

// View renders one frame from current state: header, body, optional log
// strip, footer. Overlays replace the body rather than the whole frame so
// the header context stays visible.
func (m Dashboard) View() string {
	if m.quitting || m.fatalErr != nil {
		return ""
	}
	if !m.ready {
		return "\n  Loading dashboard..."
	}

	header := components.Header{
		Exchange:   m.exchange.Name,
		Market:     m.currentMarket,
		Period:     m.currentPeriod,
		LastUpdate: m.lastUpdate,
		Width:      m.width,
	}.Render()

	bodyH := m.height - 3 // header, footer, log strip
	body := m.renderBody(bodyH)

	strip := ""
	if m.overlay == overlayLog {
		strip = m.logView.Tail()
	}
	strip = lipgloss.NewStyle().Width(m.width).Render(strip)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		strip,
		m.footer().Render(),
	)
}

// renderBody picks the body surface for the active overlay.
func (m Dashboard) renderBody(height int) string {
	switch m.overlay {
	case overlayError:
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
			m.errBox.Render())
	case overlayHelp:
		return renderHelp(m.helpBody, m.helpView.View(m.keys))
	}

	if !m.running {
		return m.renderLoading(height)
	}
	return m.renderDashboard(height)
}

// renderLoading shows the cold-start spinner above the activity log.
func (m Dashboard) renderLoading(height int) string {
	line := m.spin.View() + " Fetching initial market data..."
	content := lipgloss.JoinVertical(lipgloss.Left,
		"",
		"  "+line,
		styles.Divider(m.width-4),
		m.logView.View(),
	)
	return lipgloss.Place(m.width, height, lipgloss.Left, lipgloss.Top, content)
}

// renderDashboard stacks the price table over the trend chart.
func (m Dashboard) renderDashboard(height int) string {
	tablePanel := styles.PanelFocused.Width(m.tableWidth() + 2).Render(
		styles.Title.Render("Markets") + "\n" + m.table.View())

	cw, ch := m.chartSize()
	chart := components.TrendChart{Series: m.trend, Width: cw, Height: ch}.Render()

	chartTitle := styles.Title.Render(m.currentMarket) +
		styles.Label.Render(" · "+market.PeriodLabel(m.currentPeriod))
	chartContent := chartTitle + "\n" + chart
	if m.cfg.Chart.Legend {
		chartContent += "\n" + m.legend(cw)
	}
	chartPanel := styles.Panel.Width(cw + 2).Render(chartContent)

	return lipgloss.JoinVertical(lipgloss.Left, tablePanel, chartPanel)
}

// legend renders the sparkline summary line under the chart.
func (m Dashboard) legend(width int) string {
	closes := m.trend.Closes()
	if len(closes) == 0 {
		return ""
	}
	sparkW := width / 3
	if sparkW > 24 {
		sparkW = 24
	}
	first, last := closes[0], closes[len(closes)-1]
	change := 0.0
	if first != 0 {
		change = (last - first) / first * 100
	}
	return styles.Dim("last ") + styles.Value.Render(market.FormatPrice(last)) +
		" " + styles.ChangeStyle(change).Render(market.FormatChange(change)) +
		"  " + styles.Sparkline(closes, sparkW)
}

// footer picks the hint preset for the active overlay.
func (m Dashboard) footer() components.Footer {
	switch m.overlay {
	case overlayError:
		return components.ErrorFooter(m.width)
	case overlayHelp:
		return components.HelpFooter(m.width)
	}
	return components.DashboardFooter(m.width, len(m.exchange.Periods))
}

// equalStrings reports element-wise equality.
func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
