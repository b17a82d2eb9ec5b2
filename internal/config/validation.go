package config

import "fmt"

// ValidationError describes a single config validation failure.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface for a single validation error.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// Validate checks the Config for completeness and consistency. It returns
// a slice of all discovered issues rather than stopping at the first one.
func Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	if cfg.Exchange == "" {
		errs = append(errs, ValidationError{Field: "exchange", Message: "required field is empty"})
	}
	if len(cfg.Markets) == 0 {
		errs = append(errs, ValidationError{Field: "markets", Message: "at least one market is required"})
	}
	if len(cfg.Periods) == 0 {
		errs = append(errs, ValidationError{Field: "periods", Message: "at least one period is required"})
	}
	if len(cfg.Periods) > 9 {
		errs = append(errs, ValidationError{
			Field:   "periods",
			Message: fmt.Sprintf("at most 9 periods can be bound to number keys, got %d", len(cfg.Periods)),
		})
	}

	if cfg.DefaultPeriod != "" {
		found := false
		for _, p := range cfg.Periods {
			if p == cfg.DefaultPeriod {
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, ValidationError{
				Field:   "defaultPeriod",
				Message: fmt.Sprintf("%q is not one of the configured periods", cfg.DefaultPeriod),
			})
		}
	}

	seen := make(map[string]bool, len(cfg.Markets))
	for _, m := range cfg.Markets {
		if m == "" {
			errs = append(errs, ValidationError{Field: "markets", Message: "empty market name"})
			continue
		}
		if seen[m] {
			errs = append(errs, ValidationError{
				Field:   "markets",
				Message: fmt.Sprintf("duplicate market %q", m),
			})
		}
		seen[m] = true
	}

	if cfg.Poll.PriceSec <= 0 {
		errs = append(errs, ValidationError{
			Field:   "poll.priceSec",
			Message: fmt.Sprintf("must be > 0, got %d", cfg.Poll.PriceSec),
		})
	}
	if cfg.Poll.TrendSec <= 0 {
		errs = append(errs, ValidationError{
			Field:   "poll.trendSec",
			Message: fmt.Sprintf("must be > 0, got %d", cfg.Poll.TrendSec),
		})
	}

	return errs
}
