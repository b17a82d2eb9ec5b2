package market

import (
	"fmt"
	"time"
)

// ---------------------------------------------------------------------------
// Display formatting
// ---------------------------------------------------------------------------
//
// Pure helpers shared by the TUI table/chart and the snapshot command.
// Precision adapts to price magnitude so sub-dollar coins stay readable
// without drowning large caps in decimals.

// FormatPrice renders a price with magnitude-dependent precision.
func FormatPrice(v float64) string {
	switch {
	case v >= 1000:
		return fmt.Sprintf("%.0f", v)
	case v >= 100:
		return fmt.Sprintf("%.1f", v)
	case v >= 10:
		return fmt.Sprintf("%.2f", v)
	case v >= 1:
		return fmt.Sprintf("%.3f", v)
	default:
		return fmt.Sprintf("%.4f", v)
	}
}

// FormatChange renders a percentage change with an explicit sign.
func FormatChange(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// PeriodLabel returns the human label for a period string, e.g. "1h" ->
// "1 hour". Unknown periods pass through unchanged.
func PeriodLabel(period string) string {
	switch period {
	case "1h":
		return "1 hour"
	case "1d":
		return "1 day"
	case "7d":
		return "7 days"
	case "30d":
		return "30 days"
	case "90d":
		return "90 days"
	case "1y":
		return "1 year"
	default:
		return period
	}
}

// TimeLabel formats a sample timestamp for the chart's X axis. Intraday
// periods show clock time, longer periods the date.
func TimeLabel(t time.Time, period string) string {
	switch period {
	case "1h", "1d":
		return t.Format("15:04")
	case "7d", "30d":
		return t.Format("Jan 02")
	default:
		return t.Format("Jan 06")
	}
}

// LastUpdateLabel formats the table's last-update timestamp.
func LastUpdateLabel(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format("15:04:05")
}
