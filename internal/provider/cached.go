package provider

import (
	"context"
	"fmt"
	"time"

	"aitrader/internal/model"
)

// Cached decorates a BarProvider with a best-effort series cache.
// Cache failures fall through to the upstream provider; the cache never
// makes a request fail.
type Cached struct {
	upstream model.BarProvider
	cache    model.SeriesCache
}

// NewCached wraps upstream with cache.
func NewCached(upstream model.BarProvider, cache model.SeriesCache) *Cached {
	return &Cached{upstream: upstream, cache: cache}
}

func cacheKey(symbol string, start, end time.Time) string {
	return fmt.Sprintf("%s:%s:%s", symbol, start.Format("2006-01-02"), end.Format("2006-01-02"))
}

func (c *Cached) GetBars(ctx context.Context, symbol string, start, end time.Time) (model.BarSeries, error) {
	key := cacheKey(symbol, start, end)
	if bars, ok := c.cache.Get(ctx, key); ok {
		return bars, nil
	}

	bars, err := c.upstream.GetBars(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}

	c.cache.Set(ctx, key, bars)
	return bars, nil
}
