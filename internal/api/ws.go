package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin:       func(r *http.Request) bool { return true },
	EnableCompression: true,
}

const (
	streamInterval = 30 * time.Second
	writeTimeout   = 10 * time.Second
)

// handleStream upgrades to WebSocket and pushes a fresh signal for one
// symbol on a fixed interval. One symbol per connection; there is no
// subscription or broadcast machinery here.
// GET /api/v1/stream?symbol=AAPL&days=90
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
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

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	if s.metrics != nil {
		s.metrics.StreamClients.Inc()
		defer s.metrics.StreamClients.Dec()
	}

	// Read pump: drains control frames and detects client close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(streamInterval)
	defer ticker.Stop()

	push := func() bool {
		sig, err := s.svc.Analyze(r.Context(), sym, days)
		if err != nil {
			slog.Warn("stream signal failed", "symbol", sym, "err", err)
			return true // transient upstream trouble; keep the connection
		}
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(sig); err != nil {
			return false
		}
		return true
	}

	if !push() {
		return
	}
	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if !push() {
				return
			}
		}
	}
}
