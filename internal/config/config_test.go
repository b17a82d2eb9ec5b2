package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned unexpected error: %v", err)
	}

	if cfg.Exchange != "coingecko" {
		t.Errorf("default exchange = %q, want coingecko", cfg.Exchange)
	}
	if len(cfg.Markets) == 0 {
		t.Error("default markets empty")
	}
	if cfg.Poll.PriceSec != 10 || cfg.Poll.TrendSec != 60 {
		t.Errorf("default poll = %+v, want 10/60", cfg.Poll)
	}
	if cfg.DefaultPeriod != cfg.Periods[0] {
		t.Errorf("defaultPeriod = %q, want first period %q", cfg.DefaultPeriod, cfg.Periods[0])
	}
	if !cfg.Table.Header || !cfg.Chart.Legend {
		t.Error("table header and chart legend should default on")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{
		"exchange": "coinbase",
		"markets": ["BTC", "ETH"],
		"periods": ["1h", "1d"],
		"defaultPeriod": "1d",
		"poll": {"priceSec": 5, "trendSec": 30},
		"table": {"header": false},
		"chart": {"legend": false}
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned unexpected error: %v", err)
	}

	if cfg.Exchange != "coinbase" {
		t.Errorf("exchange = %q, want coinbase", cfg.Exchange)
	}
	if len(cfg.Markets) != 2 || cfg.Markets[0] != "BTC" {
		t.Errorf("markets = %v", cfg.Markets)
	}
	if cfg.DefaultPeriod != "1d" {
		t.Errorf("defaultPeriod = %q, want 1d", cfg.DefaultPeriod)
	}
	if cfg.Poll.PriceSec != 5 || cfg.Poll.TrendSec != 30 {
		t.Errorf("poll = %+v, want 5/30", cfg.Poll)
	}
	if cfg.Table.Header {
		t.Error("table header should be off")
	}
}

func TestLoadMissingNamedFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing named config file")
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{"markets": [], "poll": {"priceSec": -1, "trendSec": 0}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := &Config{
		Markets: []string{"BTC", "BTC", ""},
		Periods: []string{"1h"},
		Poll:    PollConfig{PriceSec: 0, TrendSec: -5},
	}

	errs := Validate(cfg)
	if len(errs) < 4 {
		t.Fatalf("expected at least 4 validation errors, got %d: %v", len(errs), errs)
	}

	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
	}
	for _, want := range []string{"exchange", "markets", "poll.priceSec", "poll.trendSec"} {
		if !fields[want] {
			t.Errorf("missing validation error for %s", want)
		}
	}
}

func TestValidateDefaultPeriodMembership(t *testing.T) {
	cfg := &Config{
		Exchange:      "coingecko",
		Markets:       []string{"BTC"},
		Periods:       []string{"1h", "1d"},
		DefaultPeriod: "7d",
		Poll:          PollConfig{PriceSec: 10, TrendSec: 60},
	}

	errs := Validate(cfg)
	if len(errs) != 1 || errs[0].Field != "defaultPeriod" {
		t.Fatalf("expected single defaultPeriod error, got %v", errs)
	}
}

func TestValidateTooManyPeriods(t *testing.T) {
	cfg := &Config{
		Exchange: "coingecko",
		Markets:  []string{"BTC"},
		Periods:  []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"},
		Poll:     PollConfig{PriceSec: 10, TrendSec: 60},
	}

	errs := Validate(cfg)
	found := false
	for _, e := range errs {
		if e.Field == "periods" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected periods error for >9 periods, got %v", errs)
	}
}
