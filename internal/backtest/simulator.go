// Package backtest replays the indicator + signal pipeline day-by-day
// over historical bars and simulates trade execution against a
// cash/position ledger.
package backtest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"aitrader/internal/indicator"
	"aitrader/internal/model"
	"aitrader/internal/signal"
)

// Config holds simulation policy constants.
type Config struct {
	InitialCapital float64
	// InvestFraction is the share of cash invested per BUY. The 95%
	// default reserves a cash buffer and avoids fractional-share edge
	// cases; it is a fixed policy, not derived from risk metrics.
	InvestFraction float64
}

// DefaultConfig returns the standard simulation parameters.
func DefaultConfig() Config {
	return Config{
		InitialCapital: 100000,
		InvestFraction: 0.95,
	}
}

// Simulator runs backtests against a bar provider. Each Run owns its
// own ledger exclusively; concurrent runs need no coordination.
type Simulator struct {
	provider model.BarProvider
	gen      *signal.Generator
	cfg      Config
}

// NewSimulator creates a Simulator. Zero-valued Config fields fall back
// to the defaults.
func NewSimulator(provider model.BarProvider, gen *signal.Generator, cfg Config) *Simulator {
	def := DefaultConfig()
	if cfg.InitialCapital <= 0 {
		cfg.InitialCapital = def.InitialCapital
	}
	if cfg.InvestFraction <= 0 || cfg.InvestFraction > 1 {
		cfg.InvestFraction = def.InvestFraction
	}
	return &Simulator{provider: provider, gen: gen, cfg: cfg}
}

// Run fetches bars for the trailing lookback window and replays the
// decision pipeline over them. A provider with fewer than 20 bars
// yields the explicit no-data report, not an error: that is an expected
// outcome for illiquid or newly listed symbols.
func (s *Simulator) Run(ctx context.Context, sym string, days int) (model.BacktestReport, error) {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)

	bars, err := s.provider.GetBars(ctx, sym, start, end)
	if err != nil {
		if errors.Is(err, model.ErrNoData) {
			return model.NoDataReport(), nil
		}
		return model.BacktestReport{}, fmt.Errorf("fetch bars for %s: %w", sym, err)
	}
	if len(bars) < indicator.MinBars {
		return model.NoDataReport(), nil
	}

	return s.Replay(sym, bars)
}

// Replay simulates trade execution over an explicit bar series.
// Exposed separately so offline tools can drive it from local storage.
func (s *Simulator) Replay(sym string, bars model.BarSeries) (model.BacktestReport, error) {
	if err := bars.Validate(); err != nil {
		return model.BacktestReport{}, fmt.Errorf("replay %s: %w", sym, err)
	}
	if len(bars) < indicator.MinBars {
		return model.NoDataReport(), nil
	}

	ledger := NewLedger(s.cfg.InitialCapital)

	// Day i decides on bars [0..i]; the first simulated day sits after a
	// full indicator lookback of history.
	for i := indicator.MinBars; i < len(bars); i++ {
		snap, err := indicator.Compute(bars[:i+1])
		if err != nil {
			// Series already validated and long enough; treat any
			// residual failure as a HOLD day rather than aborting.
			slog.Warn("snapshot failed mid-replay", "symbol", sym, "bar", i, "err", err)
			continue
		}

		sig := s.gen.Generate(sym, bars[i].TS, snap)
		close := bars[i].Close

		switch sig.Signal {
		case model.ActionBuy:
			ledger.Buy(bars[i].TS, close, s.cfg.InvestFraction)
		case model.ActionSell:
			ledger.Sell(bars[i].TS, close)
		}
	}

	lastClose := bars[len(bars)-1].Close
	final := ledger.Value(lastClose)

	return model.BacktestReport{
		Symbol:         sym,
		InitialBalance: s.cfg.InitialCapital,
		FinalBalance:   final,
		ReturnPct:      (final - s.cfg.InitialCapital) / s.cfg.InitialCapital * 100,
		Trades:         ledger.Trades(),
	}, nil
}
