// Package metrics exposes Prometheus metrics for the signal service.
package metrics

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the signal engine.
type Metrics struct {
	SignalsTotal     *prometheus.CounterVec // labels: action
	BacktestsTotal   prometheus.Counter
	BacktestNoData   prometheus.Counter
	BacktestTrades   prometheus.Histogram
	ProviderFetchDur prometheus.Histogram
	ProviderErrors   prometheus.Counter
	ScanDur          prometheus.Histogram
	StreamClients    prometheus.Gauge
}

// New registers and returns all Prometheus metrics.
func New() *Metrics {
	m := &Metrics{
		SignalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aitrader_signals_total",
			Help: "Trading signals generated, by action",
		}, []string{"action"}),
		BacktestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aitrader_backtests_total",
			Help: "Backtest runs completed",
		}),
		BacktestNoData: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aitrader_backtests_nodata_total",
			Help: "Backtest requests answered with the no-data report",
		}),
		BacktestTrades: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "aitrader_backtest_trades",
			Help:    "Simulated trades executed per backtest run",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		}),
		ProviderFetchDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "aitrader_provider_fetch_duration_seconds",
			Help:    "Bar provider fetch latency",
			Buckets: prometheus.DefBuckets,
		}),
		ProviderErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aitrader_provider_errors_total",
			Help: "Bar provider fetch failures (excluding no-data)",
		}),
		ScanDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "aitrader_scan_duration_seconds",
			Help:    "Watchlist scan duration",
			Buckets: prometheus.DefBuckets,
		}),
		StreamClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "aitrader_stream_clients",
			Help: "Connected WebSocket stream clients",
		}),
	}

	prometheus.MustRegister(
		m.SignalsTotal,
		m.BacktestsTotal,
		m.BacktestNoData,
		m.BacktestTrades,
		m.ProviderFetchDur,
		m.ProviderErrors,
		m.ScanDur,
		m.StreamClients,
	)
	return m
}

// Serve starts the /metrics endpoint on addr. Blocks; run in a goroutine.
func Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Printf("[metrics] serving on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("[metrics] server error: %v", err)
	}
}
