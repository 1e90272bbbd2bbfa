package scanner

import (
	"context"
	"testing"
	"time"

	"aitrader/internal/model"
	"aitrader/internal/signal"
)

type stubProvider struct {
	bars map[string]model.BarSeries
}

func (s *stubProvider) GetBars(ctx context.Context, symbol string, start, end time.Time) (model.BarSeries, error) {
	bars, ok := s.bars[symbol]
	if !ok {
		return nil, model.ErrNoData
	}
	return bars, nil
}

func flatBars(n int, price float64) model.BarSeries {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make(model.BarSeries, n)
	for i := range bars {
		bars[i] = model.Bar{
			TS:     base.AddDate(0, 0, i),
			Open:   price,
			High:   price + 0.5,
			Low:    price - 0.5,
			Close:  price,
			Volume: 1000,
		}
	}
	return bars
}

func newTestScanner(p model.BarProvider, symbols []string) *Scanner {
	svc := signal.NewService(p, signal.NewGenerator(signal.DefaultThreshold), nil)
	return New(svc, symbols, 90, nil)
}

func TestScan_PopulatesLatestSorted(t *testing.T) {
	p := &stubProvider{bars: map[string]model.BarSeries{
		"MSFT": flatBars(30, 400),
		"AAPL": flatBars(30, 185),
	}}
	s := newTestScanner(p, []string{"MSFT", "AAPL"})

	s.Scan(context.Background())

	latest := s.Latest()
	if len(latest) != 2 {
		t.Fatalf("latest = %d signals, want 2", len(latest))
	}
	if latest[0].Symbol != "AAPL" || latest[1].Symbol != "MSFT" {
		t.Errorf("latest not sorted by symbol: %s, %s", latest[0].Symbol, latest[1].Symbol)
	}
	for _, sig := range latest {
		if sig.Signal != model.ActionHold {
			t.Errorf("%s: flat series gave %s, want HOLD", sig.Symbol, sig.Signal)
		}
	}
}

func TestScan_BadSymbolSkipped(t *testing.T) {
	p := &stubProvider{bars: map[string]model.BarSeries{
		"AAPL": flatBars(30, 185),
	}}
	s := newTestScanner(p, []string{"NOPE", "AAPL"})

	s.Scan(context.Background())

	latest := s.Latest()
	if len(latest) != 1 {
		t.Fatalf("latest = %d signals, want 1", len(latest))
	}
	if latest[0].Symbol != "AAPL" {
		t.Errorf("symbol = %q", latest[0].Symbol)
	}
}

func TestScan_RefreshReplacesSignal(t *testing.T) {
	p := &stubProvider{bars: map[string]model.BarSeries{
		"AAPL": flatBars(30, 185),
	}}
	s := newTestScanner(p, []string{"AAPL"})

	s.Scan(context.Background())
	first := s.Latest()[0]

	s.Scan(context.Background())
	second := s.Latest()[0]

	if second.TS.Before(first.TS) {
		t.Errorf("refresh went backwards: %v then %v", first.TS, second.TS)
	}
	if len(s.Latest()) != 1 {
		t.Errorf("rescan duplicated the symbol")
	}
}

func TestLatest_EmptyBeforeFirstScan(t *testing.T) {
	s := newTestScanner(&stubProvider{}, []string{"AAPL"})
	if got := s.Latest(); len(got) != 0 {
		t.Errorf("latest = %d signals before any scan", len(got))
	}
}
