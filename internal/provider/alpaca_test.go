package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aitrader/internal/model"
)

func newTestAlpaca(t *testing.T, handler http.HandlerFunc) *Alpaca {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAlpaca(AlpacaConfig{
		BaseURL:   srv.URL,
		APIKey:    "test-key",
		APISecret: "test-secret",
	})
}

func TestAlpaca_GetBars(t *testing.T) {
	a := newTestAlpaca(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/stocks/AAPL/bars" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("APCA-API-KEY-ID"); got != "test-key" {
			t.Errorf("key header = %q", got)
		}
		if got := r.Header.Get("APCA-API-SECRET-KEY"); got != "test-secret" {
			t.Errorf("secret header = %q", got)
		}
		if got := r.URL.Query().Get("timeframe"); got != "1Day" {
			t.Errorf("timeframe = %q", got)
		}

		fmt.Fprint(w, `{
			"symbol": "AAPL",
			"bars": [
				{"t": "2024-01-02T05:00:00Z", "o": 187.15, "h": 188.44, "l": 183.89, "c": 185.64, "v": 82488700},
				{"t": "2024-01-03T05:00:00Z", "o": 184.22, "h": 185.88, "l": 183.43, "c": 184.25, "v": 58414500}
			],
			"next_page_token": null
		}`)
	})

	bars, err := a.GetBars(context.Background(), "AAPL",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("got %d bars, want 2", len(bars))
	}
	want := model.Bar{
		TS:     time.Date(2024, 1, 2, 5, 0, 0, 0, time.UTC),
		Open:   187.15,
		High:   188.44,
		Low:    183.89,
		Close:  185.64,
		Volume: 82488700,
	}
	if bars[0] != want {
		t.Errorf("bar 0 = %+v, want %+v", bars[0], want)
	}
}

func TestAlpaca_Pagination(t *testing.T) {
	var calls int
	a := newTestAlpaca(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch r.URL.Query().Get("page_token") {
		case "":
			fmt.Fprint(w, `{"symbol":"AAPL","bars":[{"t":"2024-01-02T05:00:00Z","o":1,"h":1,"l":1,"c":1,"v":1}],"next_page_token":"tok-2"}`)
		case "tok-2":
			fmt.Fprint(w, `{"symbol":"AAPL","bars":[{"t":"2024-01-03T05:00:00Z","o":2,"h":2,"l":2,"c":2,"v":2}],"next_page_token":null}`)
		default:
			t.Errorf("unexpected page_token %q", r.URL.Query().Get("page_token"))
			w.WriteHeader(http.StatusBadRequest)
		}
	})

	bars, err := a.GetBars(context.Background(), "AAPL", time.Now().AddDate(0, 0, -5), time.Now())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if calls != 2 {
		t.Errorf("made %d requests, want 2", calls)
	}
	if len(bars) != 2 {
		t.Fatalf("got %d bars, want 2", len(bars))
	}
	if bars[0].Close != 1 || bars[1].Close != 2 {
		t.Errorf("pages out of order: %+v", bars)
	}
}

func TestAlpaca_EmptyRangeIsNoData(t *testing.T) {
	a := newTestAlpaca(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"symbol":"XYZ","bars":[],"next_page_token":null}`)
	})

	_, err := a.GetBars(context.Background(), "XYZ", time.Now().AddDate(0, 0, -5), time.Now())
	if !errors.Is(err, model.ErrNoData) {
		t.Errorf("err = %v, want ErrNoData", err)
	}
}

func TestAlpaca_UnknownSymbolIsNoData(t *testing.T) {
	a := newTestAlpaca(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "symbol not found"})
	})

	_, err := a.GetBars(context.Background(), "NOPE", time.Now().AddDate(0, 0, -5), time.Now())
	if !errors.Is(err, model.ErrNoData) {
		t.Errorf("err = %v, want ErrNoData", err)
	}
}

func TestAlpaca_ServerErrorIsNotNoData(t *testing.T) {
	a := newTestAlpaca(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := a.GetBars(context.Background(), "AAPL", time.Now().AddDate(0, 0, -5), time.Now())
	if err == nil {
		t.Fatal("server error swallowed")
	}
	if errors.Is(err, model.ErrNoData) {
		t.Error("server error misclassified as no-data")
	}
}
