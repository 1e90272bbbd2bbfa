package signal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aitrader/internal/indicator"
	"aitrader/internal/metrics"
	"aitrader/internal/model"
)

// DefaultLookbackDays is the default history window for live signals.
// Generous enough that weekends/holidays still leave 20+ trading bars.
const DefaultLookbackDays = 90

// Service runs the fetch → indicators → vote pipeline for live signals.
type Service struct {
	provider model.BarProvider
	gen      *Generator
	metrics  *metrics.Metrics // optional, may be nil
}

// NewService creates a signal service. metrics may be nil.
func NewService(provider model.BarProvider, gen *Generator, m *metrics.Metrics) *Service {
	return &Service{provider: provider, gen: gen, metrics: m}
}

// Analyze fetches the trailing window of bars for symbol and produces a
// fresh signal stamped with the current time. days <= 0 selects
// DefaultLookbackDays. Returns ErrNoData (wrapped) when the provider
// has no history and ErrInsufficientData when it has fewer than 20 bars.
func (s *Service) Analyze(ctx context.Context, symbol string, days int) (model.TradingSignal, error) {
	if days <= 0 {
		days = DefaultLookbackDays
	}
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)

	fetchStart := time.Now()
	bars, err := s.provider.GetBars(ctx, symbol, start, end)
	if s.metrics != nil {
		s.metrics.ProviderFetchDur.Observe(time.Since(fetchStart).Seconds())
	}
	if err != nil {
		if s.metrics != nil && !errors.Is(err, model.ErrNoData) {
			s.metrics.ProviderErrors.Inc()
		}
		return model.TradingSignal{}, fmt.Errorf("fetch bars for %s: %w", symbol, err)
	}

	snap, err := indicator.Compute(bars)
	if err != nil {
		return model.TradingSignal{}, fmt.Errorf("compute indicators for %s: %w", symbol, err)
	}

	sig := s.gen.Generate(symbol, time.Now().UTC(), snap)
	if s.metrics != nil {
		s.metrics.SignalsTotal.WithLabelValues(string(sig.Signal)).Inc()
	}
	return sig, nil
}
