// cmd/backtest replays the indicator + voting pipeline over locally
// stored bars to evaluate the strategy without live market data.
//
// Usage:
//
//	go run ./cmd/backtest --symbol=AAPL --days=365 --db=data/bars.db
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"aitrader/internal/backtest"
	"aitrader/internal/provider"
	"aitrader/internal/signal"
	sqlitestore "aitrader/internal/store/sqlite"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)

	symbol := flag.String("symbol", "", "Symbol to backtest (required)")
	days := flag.Int("days", 365, "Lookback window in calendar days")
	dbPath := flag.String("db", "data/bars.db", "Path to SQLite bar database")
	capital := flag.Float64("capital", 100000, "Initial capital")
	fraction := flag.Float64("fraction", 0.95, "Fraction of cash invested per BUY")
	threshold := flag.Float64("threshold", signal.DefaultThreshold, "Prediction threshold")
	flag.Parse()

	if *symbol == "" {
		log.Fatal("[backtest] --symbol is required")
	}

	store, err := sqlitestore.New(*dbPath)
	if err != nil {
		log.Fatalf("[backtest] sqlite open failed: %v", err)
	}
	defer store.Close()

	sim := backtest.NewSimulator(
		provider.NewSQLite(store),
		signal.NewGenerator(*threshold),
		backtest.Config{InitialCapital: *capital, InvestFraction: *fraction},
	)

	report, err := sim.Run(context.Background(), *symbol, *days)
	if err != nil {
		log.Fatalf("[backtest] run failed: %v", err)
	}
	if report.Error != "" {
		fmt.Println(report.Error)
		os.Exit(1)
	}

	for _, tr := range report.Trades {
		fmt.Printf("  [%s] %-4s %6d @ %.2f → %.2f\n",
			tr.Date.Format("2006-01-02"), tr.Type, tr.Shares, tr.Price, tr.Balance)
	}

	fmt.Println()
	fmt.Println("╔══════════════════════════════════════╗")
	fmt.Println("║        BACKTEST COMPLETE             ║")
	fmt.Println("╠══════════════════════════════════════╣")
	fmt.Printf("║  Symbol:          %-18s ║\n", report.Symbol)
	fmt.Printf("║  Initial balance: %-18.2f ║\n", report.InitialBalance)
	fmt.Printf("║  Final balance:   %-18.2f ║\n", report.FinalBalance)
	fmt.Printf("║  Return:          %-17.2f%% ║\n", report.ReturnPct)
	fmt.Printf("║  Trades:          %-18d ║\n", len(report.Trades))
	fmt.Println("╚══════════════════════════════════════╝")
}
