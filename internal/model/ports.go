package model

import (
	"context"
	"time"
)

// ── Port Interfaces ──
// These interfaces decouple the signal/backtest pipeline from concrete
// data sources (HTTP provider, SQLite, Redis cache).

// BarProvider supplies ordered daily bars for a symbol over a date range.
type BarProvider interface {
	// GetBars returns bars with timestamps in [start, end], ascending.
	// Returns ErrNoData (possibly wrapped) when the symbol has no
	// history in the range.
	GetBars(ctx context.Context, symbol string, start, end time.Time) (BarSeries, error)
}

// BarStore persists bars for offline backtesting.
type BarStore interface {
	// WriteBars upserts bars for a symbol.
	WriteBars(symbol string, bars BarSeries) error

	// ReadBars reads bars for a symbol in [start, end], ordered by
	// timestamp ascending.
	ReadBars(symbol string, start, end time.Time) (BarSeries, error)

	// Close releases underlying resources.
	Close() error
}

// SeriesCache caches fetched bar series keyed by symbol and range.
type SeriesCache interface {
	// Get returns the cached series, or ok=false on miss.
	Get(ctx context.Context, key string) (BarSeries, bool)

	// Set stores a series under key with the cache's TTL.
	Set(ctx context.Context, key string, bars BarSeries)
}
