package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"coindash/internal/config"
	"coindash/internal/market"
)

var snapshotJSON bool

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print a one-shot price snapshot and exit",
	Long: `Fetch current prices for the configured markets once and print
them, without opening the TUI.

Flags:
  --json   output the snapshot as JSON`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		client := market.NewClient(cfg.APIBase, nil)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		entries, err := client.CurrentPrices(ctx, cfg.Markets)
		if err != nil {
			return fmt.Errorf("fetching prices: %w", err)
		}

		if snapshotJSON {
			return printSnapshotJSON(cfg.Exchange, entries)
		}
		printSnapshotTable(entries)
		return nil
	},
}

// printSnapshotTable writes a plain aligned table to stdout.
func printSnapshotTable(entries []market.PriceEntry) {
	fmt.Printf("%-8s %14s %10s\n", "MARKET", "PRICE(USD)", "24H")
	for _, e := range entries {
		fmt.Printf("%-8s %14s %10s\n",
			e.Market, market.FormatPrice(e.Price), market.FormatChange(e.Change))
	}
}

// printSnapshotJSON writes the snapshot as indented JSON.
func printSnapshotJSON(exchange string, entries []market.PriceEntry) error {
	type entryJSON struct {
		Market string  `json:"market"`
		Price  float64 `json:"price"`
		Change float64 `json:"change_24h"`
	}
	type snapshot struct {
		Exchange string      `json:"exchange"`
		At       time.Time   `json:"at"`
		Markets  []entryJSON `json:"markets"`
	}

	s := snapshot{Exchange: exchange, At: time.Now()}
	for _, e := range entries {
		s.Markets = append(s.Markets, entryJSON{Market: e.Market, Price: e.Price, Change: e.Change})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

func init() {
	snapshotCmd.Flags().BoolVar(&snapshotJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(snapshotCmd)
}
