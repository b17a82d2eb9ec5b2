package components

import (
	"math"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/charmbracelet/lipgloss"

	"coindash/internal/market"
	"coindash/internal/tui/styles"
)

// TrendChart renders a trend series as a braille line chart.
type TrendChart struct {
	Series market.TrendSeries
	Width  int
	Height int
}

// minimum chart dimensions below which rendering is skipped.
const (
	minChartWidth  = 20
	minChartHeight = 6
)

// Render draws the chart, or a placeholder when there is no data or the
// terminal is too small.
func (c TrendChart) Render() string {
	closes := c.Series.Closes()
	if len(closes) < 2 {
		return styles.Dim("  no trend data")
	}
	if c.Width < minChartWidth || c.Height < minChartHeight {
		return styles.Dim("  terminal too small for chart")
	}

	lo, hi, margin := adaptiveMargin(closes)

	lineStyle := lipgloss.NewStyle().Foreground(styles.AccentPrimary)
	if last := closes[len(closes)-1]; last > closes[0] {
		lineStyle = lipgloss.NewStyle().Foreground(styles.PriceUp)
	} else if last < closes[0] {
		lineStyle = lipgloss.NewStyle().Foreground(styles.PriceDown)
	}

	axisStyle := lipgloss.NewStyle().Foreground(styles.BorderNormal)
	labelStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	labels := make([]string, len(c.Series.Points))
	for i, p := range c.Series.Points {
		labels[i] = p.Label
	}

	xFmt := func(_ int, v float64) string {
		idx := int(math.Round(v))
		if idx < 0 || idx >= len(labels) {
			return ""
		}
		return labels[idx]
	}
	yFmt := func(_ int, v float64) string {
		return market.FormatPrice(v)
	}

	lc := linechart.New(c.Width, c.Height,
		0, float64(len(closes)-1),
		lo-margin, hi+margin,
		linechart.WithXYSteps(4, 4),
		linechart.WithXLabelFormatter(xFmt),
		linechart.WithYLabelFormatter(yFmt),
		linechart.WithStyles(axisStyle, labelStyle, lineStyle),
	)

	for i := 0; i < len(closes)-1; i++ {
		p1 := canvas.Float64Point{X: float64(i), Y: closes[i]}
		p2 := canvas.Float64Point{X: float64(i + 1), Y: closes[i+1]}
		lc.DrawBrailleLineWithStyle(p1, p2, lineStyle)
	}
	lc.DrawXYAxisAndLabel()

	return lc.View()
}

// adaptiveMargin sizes the Y-axis headroom by volatility so flat series
// do not render as a wall and volatile ones keep their shape.
func adaptiveMargin(closes []float64) (lo, hi, margin float64) {
	lo, hi = closes[0], closes[0]
	for _, v := range closes {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	span := hi - lo
	if span < 1e-9 {
		return lo, hi, math.Max(lo*0.005, 1e-9)
	}

	volatility := span / lo * 100
	ratio := 0.1
	if volatility < 1.0 {
		ratio = 0.5
	} else if volatility < 3.0 {
		ratio = 0.2
	}

	margin = span * ratio
	if min := lo * 0.003; margin < min {
		margin = min
	}
	return lo, hi, margin
}
