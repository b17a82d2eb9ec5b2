package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// DataSource fetches current prices and trend history. Each call is
// independent and side-effect free on the caller; retry policy, if any,
// belongs to the implementation.
type DataSource interface {
	CurrentPrices(ctx context.Context, markets []string) ([]PriceEntry, error)
	Trend(ctx context.Context, mkt, period string) (TrendSeries, error)
}

// ---------------------------------------------------------------------------
// CoinGecko client
// ---------------------------------------------------------------------------

// DefaultBaseURL is the public CoinGecko API root.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// maxTrendPoints caps how many samples a trend series carries. The braille
// chart interpolates between points, so more adds nothing but render cost.
const maxTrendPoints = 96

// coinIDs maps common ticker symbols to CoinGecko coin ids. Symbols not
// listed here fall back to their lowercased form.
var coinIDs = map[string]string{
	"BTC":  "bitcoin",
	"ETH":  "ethereum",
	"SOL":  "solana",
	"XRP":  "ripple",
	"ADA":  "cardano",
	"DOGE": "dogecoin",
	"LTC":  "litecoin",
	"DOT":  "polkadot",
	"BCH":  "bitcoin-cash",
	"LINK": "chainlink",
	"AVAX": "avalanche-2",
	"XLM":  "stellar",
}

// periodDays maps a period string to the CoinGecko market_chart "days"
// query value. The 1h period fetches a day and trims client-side since the
// API has no sub-day window.
var periodDays = map[string]int{
	"1h":  1,
	"1d":  1,
	"7d":  7,
	"30d": 30,
	"90d": 90,
	"1y":  365,
}

// Client is a DataSource backed by the CoinGecko HTTP API.
type Client struct {
	base string
	http *http.Client
	log  *logrus.Entry
}

// NewClient creates a Client for the given API root. An empty base uses
// DefaultBaseURL. log may be nil.
func NewClient(base string, log *logrus.Logger) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 15 * time.Second},
		log:  log.WithField("module", "market"),
	}
}

// CoinID resolves a ticker symbol to its CoinGecko coin id.
func CoinID(symbol string) string {
	if id, ok := coinIDs[strings.ToUpper(symbol)]; ok {
		return id
	}
	return strings.ToLower(symbol)
}

// CurrentPrices fetches a price-and-change snapshot for all markets. The
// returned entries follow the order of the markets argument; markets the
// API did not answer for come back with zero price.
func (c *Client) CurrentPrices(ctx context.Context, markets []string) ([]PriceEntry, error) {
	ids := make([]string, len(markets))
	for i, m := range markets {
		ids[i] = CoinID(m)
	}

	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", "usd")
	q.Set("include_24hr_change", "true")

	var raw map[string]map[string]float64
	if err := c.get(ctx, "/simple/price", q, &raw); err != nil {
		return nil, &TransportError{Op: "prices", Err: err}
	}

	entries := make([]PriceEntry, len(markets))
	for i, m := range markets {
		entry := PriceEntry{Market: m}
		if quote, ok := raw[ids[i]]; ok {
			entry.Price = quote["usd"]
			entry.Change = quote["usd_24h_change"]
		}
		entries[i] = entry
	}

	c.log.WithField("markets", len(entries)).Debug("price snapshot fetched")
	return entries, nil
}

// marketChart mirrors the JSON shape of /coins/{id}/market_chart.
// Each sample is [unix milliseconds, price].
type marketChart struct {
	Prices [][2]float64 `json:"prices"`
}

// Trend fetches closing-price history for one market and period.
func (c *Client) Trend(ctx context.Context, mkt, period string) (TrendSeries, error) {
	days, ok := periodDays[period]
	if !ok {
		days = 1
	}

	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("days", fmt.Sprintf("%d", days))

	var chart marketChart
	path := "/coins/" + CoinID(mkt) + "/market_chart"
	if err := c.get(ctx, path, q, &chart); err != nil {
		return TrendSeries{}, &TransportError{Op: "trend", Err: err}
	}

	samples := chart.Prices
	if period == "1h" {
		samples = trimSince(samples, time.Now().Add(-time.Hour))
	}
	samples = downsample(samples, maxTrendPoints)

	series := TrendSeries{Market: mkt, Period: period}
	for _, s := range samples {
		ts := time.UnixMilli(int64(s[0]))
		series.Points = append(series.Points, TrendPoint{
			Label: TimeLabel(ts, period),
			Close: s[1],
		})
	}

	c.log.WithFields(logrus.Fields{
		"market": mkt,
		"period": period,
		"points": len(series.Points),
	}).Debug("trend fetched")
	return series, nil
}

// get issues a GET against the API and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, q url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// trimSince drops samples older than cutoff.
func trimSince(samples [][2]float64, cutoff time.Time) [][2]float64 {
	ms := float64(cutoff.UnixMilli())
	for i, s := range samples {
		if s[0] >= ms {
			return samples[i:]
		}
	}
	return nil
}

// downsample thins samples to at most n points using nearest-neighbour,
// always keeping the final sample.
func downsample(samples [][2]float64, n int) [][2]float64 {
	if len(samples) <= n || n < 2 {
		return samples
	}
	out := make([][2]float64, 0, n)
	for i := 0; i < n-1; i++ {
		out = append(out, samples[i*len(samples)/n])
	}
	return append(out, samples[len(samples)-1])
}
