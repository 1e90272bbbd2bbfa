package provider

import (
	"context"
	"fmt"
	"time"

	"aitrader/internal/model"
)

// SQLite adapts a BarStore to the BarProvider port so backtests can run
// against locally stored history with no network access.
type SQLite struct {
	store model.BarStore
}

// NewSQLite creates a provider backed by the given bar store.
func NewSQLite(store model.BarStore) *SQLite {
	return &SQLite{store: store}
}

// GetBars reads bars from the store; an empty result maps to ErrNoData,
// matching the remote provider's contract.
func (p *SQLite) GetBars(ctx context.Context, symbol string, start, end time.Time) (model.BarSeries, error) {
	bars, err := p.store.ReadBars(symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("read stored bars: %w", err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w for %s in store", model.ErrNoData, symbol)
	}
	return bars, nil
}
