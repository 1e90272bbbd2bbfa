package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Market data provider credentials (Alpaca-style data API)
	DataAPIKey    string
	DataAPISecret string
	DataBaseURL   string

	// Infrastructure
	RedisAddr     string
	RedisPassword string
	SQLitePath    string
	ListenAddr    string
	MetricsAddr   string

	// Signal engine
	PredictionThreshold float64

	// Backtest
	InitialCapital float64
	InvestFraction float64

	// Watchlist scanner (comma-separated symbols + 6-field cron spec)
	Watchlist string
	ScanCron  string
}

// Load reads configuration from environment variables with sensible defaults.
// Provider credentials are optional: without them the server still serves
// signals and backtests from the local SQLite bar store.
func Load() *Config {
	return &Config{
		DataAPIKey:    getEnv("DATA_API_KEY", ""),
		DataAPISecret: getEnv("DATA_API_SECRET", ""),
		DataBaseURL:   getEnv("DATA_BASE_URL", "https://data.alpaca.markets"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		SQLitePath:    getEnv("SQLITE_PATH", "data/bars.db"),
		ListenAddr:    getEnv("LISTEN_ADDR", ":8000"),
		MetricsAddr:   getEnv("METRICS_ADDR", ":9090"),

		PredictionThreshold: getEnvFloat("PREDICTION_THRESHOLD", 0.6),

		InitialCapital: getEnvFloat("INITIAL_CAPITAL", 100000),
		InvestFraction: getEnvFloat("INVEST_FRACTION", 0.95),

		Watchlist: getEnv("WATCHLIST", ""),
		// Default: top of every hour
		ScanCron: getEnv("SCAN_CRON", "0 0 * * * *"),
	}
}

// ParseWatchlist splits the Watchlist string into uppercase symbols.
func (c *Config) ParseWatchlist() []string {
	parts := strings.Split(c.Watchlist, ",")
	symbols := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		symbols = append(symbols, strings.ToUpper(p))
	}
	return symbols
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("[config] invalid float for %s: %q, using %v", key, v, fallback)
		return fallback
	}
	return f
}
