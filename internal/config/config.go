package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the full config.json schema for coindash.
type Config struct {
	Exchange      string            `json:"exchange" mapstructure:"exchange"`
	Markets       []string          `json:"markets" mapstructure:"markets"`
	Periods       []string          `json:"periods" mapstructure:"periods"`
	DefaultPeriod string            `json:"defaultPeriod" mapstructure:"defaultPeriod"`
	Poll          PollConfig        `json:"poll" mapstructure:"poll"`
	Table         TableConfig       `json:"table" mapstructure:"table"`
	Chart         ChartConfig       `json:"chart" mapstructure:"chart"`
	Colors        map[string]string `json:"colors" mapstructure:"colors"`
	APIBase       string            `json:"apiBase" mapstructure:"apiBase"`
	LogFile       string            `json:"logFile" mapstructure:"logFile"`
}

// PollConfig holds the two independent refresh cadences, in seconds.
type PollConfig struct {
	PriceSec int `json:"priceSec" mapstructure:"priceSec"`
	TrendSec int `json:"trendSec" mapstructure:"trendSec"`
}

// TableConfig controls the price table presentation.
type TableConfig struct {
	Header bool `json:"header" mapstructure:"header"`
}

// ChartConfig controls the trend chart presentation.
type ChartConfig struct {
	Legend bool `json:"legend" mapstructure:"legend"`
}

// Load reads configuration from path, or from ./config.json when path is
// empty. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("json")
		v.AddConfigPath(".")
	}

	v.SetDefault("exchange", "coingecko")
	v.SetDefault("markets", []string{"BTC", "ETH", "SOL", "XRP", "DOGE"})
	v.SetDefault("periods", []string{"1h", "1d", "7d", "30d", "1y"})
	v.SetDefault("poll.priceSec", 10)
	v.SetDefault("poll.trendSec", 60)
	v.SetDefault("table.header", true)
	v.SetDefault("chart.legend", true)
	v.SetDefault("logFile", "coindash.log")

	if err := v.ReadInConfig(); err != nil {
		// Only a named file is required to exist; the implicit ./config.json
		// lookup falls back to defaults.
		if path != "" {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.DefaultPeriod == "" && len(cfg.Periods) > 0 {
		cfg.DefaultPeriod = cfg.Periods[0]
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, fmt.Errorf("invalid config: %s", errs[0].Error())
	}
	return &cfg, nil
}
