// Package api provides the HTTP surface for signals and backtests.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"aitrader/internal/backtest"
	"aitrader/internal/logger"
	"aitrader/internal/metrics"
	"aitrader/internal/model"
	"aitrader/internal/scanner"
	"aitrader/internal/signal"
)

// Server bundles the handlers' dependencies.
type Server struct {
	svc     *signal.Service
	sim     *backtest.Simulator
	scan    *scanner.Scanner // optional, may be nil
	metrics *metrics.Metrics // optional, may be nil
}

// NewServer creates an API server. scan and m may be nil.
func NewServer(svc *signal.Service, sim *backtest.Simulator, scan *scanner.Scanner, m *metrics.Metrics) *Server {
	return &Server{svc: svc, sim: sim, scan: scan, metrics: m}
}

// Router sets up HTTP routes for the API server.
func (s *Server) Router() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/health", s.handleHealth)
	mux.HandleFunc("/api/v1/signal", s.handleSignal)
	mux.HandleFunc("/api/v1/signals", s.handleSignals)
	mux.HandleFunc("/api/v1/backtest", s.handleBacktest)
	mux.HandleFunc("/api/v1/stream", s.handleStream)

	return mux
}

// setCORS sets CORS headers for REST endpoints.
func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	setCORS(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// symbolParam extracts and normalizes the required symbol query param.
func symbolParam(r *http.Request) string {
	return strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("symbol")))
}

// daysParam parses the optional days query param; 0 means unset.
func daysParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return 0, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return 0, errors.New("days must be a positive integer")
	}
	return days, nil
}

// handleSignal computes a fresh trading signal for one symbol.
// GET /api/v1/signal?symbol=AAPL&days=90
func (s *Server) handleSignal(w http.ResponseWriter, r *http.Request) {
	sym := symbolParam(r)
	if sym == "" {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}
	days, err := daysParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID(sym, time.Now().UTC()))

	sig, err := s.svc.Analyze(ctx, sym, days)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, sig)
	case errors.Is(err, model.ErrNoData):
		writeError(w, http.StatusNotFound, "no data available for "+sym)
	case errors.Is(err, model.ErrInsufficientData):
		writeError(w, http.StatusUnprocessableEntity, "not enough history for "+sym)
	case errors.Is(err, model.ErrMalformedInput):
		writeError(w, http.StatusBadGateway, "upstream returned malformed data for "+sym)
	default:
		slog.Error("signal request failed", append(logger.LogWithRequest(ctx), "symbol", sym, "err", err)...)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// handleSignals returns the latest watchlist scan results.
// GET /api/v1/signals
func (s *Server) handleSignals(w http.ResponseWriter, r *http.Request) {
	if s.scan == nil {
		writeJSON(w, http.StatusOK, []model.TradingSignal{})
		return
	}
	writeJSON(w, http.StatusOK, s.scan.Latest())
}

// handleBacktest runs a simulation and returns the performance report.
// A no-data outcome is a 200 with an error-shaped report, not a failure.
// GET /api/v1/backtest?symbol=AAPL&days=365
func (s *Server) handleBacktest(w http.ResponseWriter, r *http.Request) {
	sym := symbolParam(r)
	if sym == "" {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}
	days, err := daysParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if days == 0 {
		days = 365
	}

	ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID(sym, time.Now().UTC()))

	report, err := s.sim.Run(ctx, sym, days)
	if err != nil {
		slog.Error("backtest failed", append(logger.LogWithRequest(ctx), "symbol", sym, "err", err)...)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if s.metrics != nil {
		s.metrics.BacktestsTotal.Inc()
		if report.Error != "" {
			s.metrics.BacktestNoData.Inc()
		} else {
			s.metrics.BacktestTrades.Observe(float64(len(report.Trades)))
		}
	}
	writeJSON(w, http.StatusOK, report)
}
