// Package provider implements bar series sources: an Alpaca-style
// market data HTTP client, a SQLite-backed source for offline runs,
// and a Redis-cached decorator.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"aitrader/internal/model"
)

const (
	defaultTimeout = 10 * time.Second
	barsPageLimit  = 10000
)

// AlpacaConfig configures the Alpaca data API client.
type AlpacaConfig struct {
	BaseURL   string // default: https://data.alpaca.markets
	APIKey    string
	APISecret string
	Timeout   time.Duration // default: 10s
}

// Alpaca fetches daily bars from the Alpaca v2 stock data API.
type Alpaca struct {
	baseURL   string
	apiKey    string
	apiSecret string
	client    *http.Client
}

// NewAlpaca creates an Alpaca bar provider.
func NewAlpaca(cfg AlpacaConfig) *Alpaca {
	base := cfg.BaseURL
	if base == "" {
		base = "https://data.alpaca.markets"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Alpaca{
		baseURL:   strings.TrimRight(base, "/"),
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		client:    &http.Client{Timeout: timeout},
	}
}

// barsResponse is the response structure from the v2 bars endpoint.
type barsResponse struct {
	Symbol string `json:"symbol"`
	Bars   []struct {
		T time.Time `json:"t"`
		O float64   `json:"o"`
		H float64   `json:"h"`
		L float64   `json:"l"`
		C float64   `json:"c"`
		V float64   `json:"v"`
	} `json:"bars"`
	NextPageToken *string `json:"next_page_token"`
}

// GetBars fetches daily bars for symbol in [start, end], following
// pagination. Returns ErrNoData when the range holds no bars.
func (a *Alpaca) GetBars(ctx context.Context, symbol string, start, end time.Time) (model.BarSeries, error) {
	var bars model.BarSeries
	pageToken := ""

	for {
		page, next, err := a.fetchPage(ctx, symbol, start, end, pageToken)
		if err != nil {
			return nil, err
		}
		bars = append(bars, page...)
		if next == "" {
			break
		}
		pageToken = next
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("%w for %s in [%s, %s]", model.ErrNoData,
			symbol, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return bars, nil
}

func (a *Alpaca) fetchPage(ctx context.Context, symbol string, start, end time.Time, pageToken string) (model.BarSeries, string, error) {
	q := url.Values{}
	q.Set("timeframe", "1Day")
	q.Set("start", start.UTC().Format(time.RFC3339))
	q.Set("end", end.UTC().Format(time.RFC3339))
	q.Set("limit", fmt.Sprint(barsPageLimit))
	q.Set("adjustment", "raw")
	if pageToken != "" {
		q.Set("page_token", pageToken)
	}

	u := fmt.Sprintf("%s/v2/stocks/%s/bars?%s", a.baseURL, url.PathEscape(symbol), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build bars request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("APCA-API-KEY-ID", a.apiKey)
	req.Header.Set("APCA-API-SECRET-KEY", a.apiSecret)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch bars: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read bars response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, "", fmt.Errorf("%w: unknown symbol %s", model.ErrNoData, symbol)
	default:
		return nil, "", fmt.Errorf("bars request for %s: status %d: %s", symbol, resp.StatusCode, truncate(body, 200))
	}

	var parsed barsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, "", fmt.Errorf("decode bars response: %w", err)
	}

	bars := make(model.BarSeries, 0, len(parsed.Bars))
	for _, b := range parsed.Bars {
		bars = append(bars, model.Bar{
			TS:     b.T.UTC(),
			Open:   b.O,
			High:   b.H,
			Low:    b.L,
			Close:  b.C,
			Volume: b.V,
		})
	}

	next := ""
	if parsed.NextPageToken != nil {
		next = *parsed.NextPageToken
	}
	return bars, next, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
