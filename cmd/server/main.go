// cmd/server runs the signal/backtest HTTP service.
//
// Bars come from the configured data API (or the local SQLite store when
// no credentials are set), optionally fronted by a Redis cache. Signals
// and backtests are served over REST plus a per-symbol WebSocket stream;
// an optional cron scanner keeps a watchlist evaluated.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"aitrader/config"
	"aitrader/internal/api"
	"aitrader/internal/backtest"
	"aitrader/internal/logger"
	"aitrader/internal/metrics"
	"aitrader/internal/model"
	"aitrader/internal/provider"
	"aitrader/internal/scanner"
	"aitrader/internal/signal"
	redisstore "aitrader/internal/store/redis"
	sqlitestore "aitrader/internal/store/sqlite"
)

func main() {
	logger.Init("server", slog.LevelInfo)
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New()
	go metrics.Serve(cfg.MetricsAddr)

	// Bar provider: remote data API when credentials exist, else the
	// local store so offline setups still work end to end.
	var barProvider model.BarProvider
	if cfg.DataAPIKey != "" {
		barProvider = provider.NewAlpaca(provider.AlpacaConfig{
			BaseURL:   cfg.DataBaseURL,
			APIKey:    cfg.DataAPIKey,
			APISecret: cfg.DataAPISecret,
		})
		slog.Info("using remote bar provider", "base_url", cfg.DataBaseURL)
	} else {
		store, err := sqlitestore.New(cfg.SQLitePath)
		if err != nil {
			slog.Error("sqlite open failed", "path", cfg.SQLitePath, "err", err)
			os.Exit(1)
		}
		defer store.Close()
		barProvider = provider.NewSQLite(store)
		slog.Info("no data API credentials, serving from local store", "path", cfg.SQLitePath)
	}

	if cfg.RedisAddr != "" {
		cache, err := redisstore.New(redisstore.CacheConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err != nil {
			slog.Error("redis connection failed", "addr", cfg.RedisAddr, "err", err)
			os.Exit(1)
		}
		defer cache.Close()
		barProvider = provider.NewCached(barProvider, cache)
	}

	gen := signal.NewGenerator(cfg.PredictionThreshold)
	svc := signal.NewService(barProvider, gen, m)
	sim := backtest.NewSimulator(barProvider, gen, backtest.Config{
		InitialCapital: cfg.InitialCapital,
		InvestFraction: cfg.InvestFraction,
	})

	var scan *scanner.Scanner
	if symbols := cfg.ParseWatchlist(); len(symbols) > 0 {
		scan = scanner.New(svc, symbols, 0, m)
		if err := scan.Start(ctx, cfg.ScanCron); err != nil {
			slog.Error("scanner start failed", "err", err)
			os.Exit(1)
		}
		slog.Info("watchlist scanner started", "symbols", symbols, "cron", cfg.ScanCron)
	}

	server := api.NewServer(svc, sim, scan, m)
	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // WebSocket streams stay open
	}

	go func() {
		slog.Info("http server listening", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("http server failed", "err", err)
			cancel()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	ossignal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	cancel()
	if scan != nil {
		scan.Stop()
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	srv.Shutdown(shutdownCtx)
}
