// Package redis caches fetched bar series so repeated signal and
// backtest requests for the same window skip the upstream provider.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"aitrader/internal/model"

	goredis "github.com/go-redis/redis/v8"
)

const defaultTTL = 15 * time.Minute

// CacheConfig configures the Redis series cache.
type CacheConfig struct {
	Addr     string // Redis address, e.g. "localhost:6379"
	Password string
	DB       int
	TTL      time.Duration // zero selects the default (15m)
}

// Cache stores JSON-encoded bar series under "bars:{key}" with a TTL.
type Cache struct {
	client *goredis.Client
	ttl    time.Duration
}

// Client returns the underlying Redis client for health checks.
func (c *Cache) Client() *goredis.Client { return c.client }

// New creates a new Cache and pings the server.
func New(cfg CacheConfig) (*Cache, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	log.Printf("[redis] connected to %s (ttl=%v)", cfg.Addr, ttl)
	return &Cache{client: client, ttl: ttl}, nil
}

// Get returns the cached series for key, or ok=false on miss or on any
// Redis/decode error — a broken cache entry never fails a request.
func (c *Cache) Get(ctx context.Context, key string) (model.BarSeries, bool) {
	data, err := c.client.Get(ctx, "bars:"+key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			log.Printf("[redis] get %s: %v", key, err)
		}
		return nil, false
	}

	var bars model.BarSeries
	if err := json.Unmarshal(data, &bars); err != nil {
		log.Printf("[redis] decode %s: %v", key, err)
		return nil, false
	}
	return bars, true
}

// Set stores the series under key. Errors are logged, not returned:
// the cache is best-effort.
func (c *Cache) Set(ctx context.Context, key string, bars model.BarSeries) {
	data, err := json.Marshal(bars)
	if err != nil {
		log.Printf("[redis] encode %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, "bars:"+key, data, c.ttl).Err(); err != nil {
		log.Printf("[redis] set %s: %v", key, err)
	}
}

// Close closes the Redis connection.
func (c *Cache) Close() error {
	return c.client.Close()
}
