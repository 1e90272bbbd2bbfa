// Package scanner periodically evaluates a watchlist of symbols and
// keeps the most recent signal per symbol in memory. Nothing is
// persisted; the latest scan is queryable over the API.
package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"aitrader/internal/metrics"
	"aitrader/internal/model"
	"aitrader/internal/signal"

	"github.com/robfig/cron/v3"
)

// Scanner runs cron-scheduled watchlist scans.
type Scanner struct {
	svc     *signal.Service
	symbols []string
	days    int
	metrics *metrics.Metrics // optional, may be nil

	cron *cron.Cron

	mu     sync.RWMutex
	latest map[string]model.TradingSignal
}

// New creates a Scanner over the given watchlist. days <= 0 selects the
// service's default lookback.
func New(svc *signal.Service, symbols []string, days int, m *metrics.Metrics) *Scanner {
	return &Scanner{
		svc:     svc,
		symbols: symbols,
		days:    days,
		metrics: m,
		cron:    cron.New(cron.WithSeconds()),
		latest:  make(map[string]model.TradingSignal, len(symbols)),
	}
}

// Start registers the scan task under spec (6-field cron expression)
// and starts the scheduler. An immediate first scan runs in the
// background so the API has data before the first tick.
func (s *Scanner) Start(ctx context.Context, spec string) error {
	if _, err := s.cron.AddFunc(spec, func() { s.Scan(ctx) }); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	s.cron.Start()
	go s.Scan(ctx)
	return nil
}

// Stop stops the scheduler, waiting for a running scan to finish.
func (s *Scanner) Stop() {
	<-s.cron.Stop().Done()
}

// Scan evaluates every watchlist symbol once. Per-symbol failures are
// logged and skipped; one bad symbol never aborts the pass.
func (s *Scanner) Scan(ctx context.Context) {
	start := time.Now()
	for _, sym := range s.symbols {
		sig, err := s.svc.Analyze(ctx, sym, s.days)
		if err != nil {
			slog.Warn("scan failed", "symbol", sym, "err", err)
			continue
		}
		s.mu.Lock()
		s.latest[sym] = sig
		s.mu.Unlock()
	}
	if s.metrics != nil {
		s.metrics.ScanDur.Observe(time.Since(start).Seconds())
	}
	slog.Info("watchlist scan complete", "symbols", len(s.symbols), "took", time.Since(start).String())
}

// Latest returns the most recent signal per symbol, sorted by symbol.
func (s *Scanner) Latest() []model.TradingSignal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.TradingSignal, 0, len(s.latest))
	for _, sig := range s.latest {
		out = append(out, sig)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}
