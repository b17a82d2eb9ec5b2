package market

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

// Exchange describes the data-source venue: its display name and the trend
// periods it supports. Period order is significant -- it defines the 1..N
// key bindings in the dashboard.
type Exchange struct {
	Name          string
	Periods       []string
	DefaultPeriod string
}

// HasPeriod reports whether p is one of the exchange's supported periods.
func (e Exchange) HasPeriod(p string) bool {
	for _, q := range e.Periods {
		if q == p {
			return true
		}
	}
	return false
}

// PriceEntry is one row of the current-price table.
type PriceEntry struct {
	Market string
	Price  float64
	Change float64 // 24h change, percent
}

// TrendPoint is one (label, closing price) sample of a trend series.
type TrendPoint struct {
	Label string
	Close float64
}

// TrendSeries is the closing-price history for one market over one period.
// Market and Period record what the series was fetched for, which is not
// necessarily the user's current selection by the time the fetch resolves.
type TrendSeries struct {
	Market string
	Period string
	Points []TrendPoint
}

// Closes returns the closing prices of the series in order.
func (s TrendSeries) Closes() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Close
	}
	return out
}

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

// TransportError wraps a failed data-source call. The dashboard treats it
// as recoverable and surfaces it in the error overlay; anything else that
// escapes the data source is a programming error.
type TransportError struct {
	Op  string // "prices", "trend"
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
