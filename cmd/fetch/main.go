// cmd/fetch pulls daily bars from the configured data API into the
// local SQLite store so signals and backtests can run offline.
//
// Usage:
//
//	DATA_API_KEY=... DATA_API_SECRET=... go run ./cmd/fetch --symbols=AAPL,MSFT --days=730
package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"aitrader/config"
	"aitrader/internal/provider"
	sqlitestore "aitrader/internal/store/sqlite"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)

	symbolsFlag := flag.String("symbols", "", "Comma-separated symbols to fetch (required)")
	days := flag.Int("days", 730, "Lookback window in calendar days")
	flag.Parse()

	cfg := config.Load()
	if cfg.DataAPIKey == "" {
		log.Fatal("[fetch] DATA_API_KEY is required")
	}

	var symbols []string
	for _, s := range strings.Split(*symbolsFlag, ",") {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			symbols = append(symbols, s)
		}
	}
	if len(symbols) == 0 {
		log.Fatal("[fetch] --symbols is required")
	}

	store, err := sqlitestore.New(cfg.SQLitePath)
	if err != nil {
		log.Fatalf("[fetch] sqlite open failed: %v", err)
	}
	defer store.Close()

	src := provider.NewAlpaca(provider.AlpacaConfig{
		BaseURL:   cfg.DataBaseURL,
		APIKey:    cfg.DataAPIKey,
		APISecret: cfg.DataAPISecret,
	})

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -*days)
	ctx := context.Background()

	for _, sym := range symbols {
		bars, err := src.GetBars(ctx, sym, start, end)
		if err != nil {
			log.Printf("[fetch] %s: %v", sym, err)
			continue
		}
		if err := store.WriteBars(sym, bars); err != nil {
			log.Printf("[fetch] %s: write failed: %v", sym, err)
			continue
		}
		log.Printf("[fetch] %s: stored %d bars (%s → %s)", sym, len(bars),
			bars[0].TS.Format("2006-01-02"), bars[len(bars)-1].TS.Format("2006-01-02"))
	}
}
