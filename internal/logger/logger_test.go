package logger

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestInit(t *testing.T) {
	logger := Init("test-service", slog.LevelInfo)
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestRequestID_RoundTrip(t *testing.T) {
	ctx := context.Background()

	// No request ID set
	if rid := RequestID(ctx); rid != "" {
		t.Errorf("expected empty request id, got %q", rid)
	}

	// Set and retrieve
	ctx = WithRequestID(ctx, "test-req-123")
	if rid := RequestID(ctx); rid != "test-req-123" {
		t.Errorf("expected 'test-req-123', got %q", rid)
	}
}

func TestGenerateRequestID(t *testing.T) {
	ts := time.Date(2024, 1, 15, 10, 30, 0, 123456789, time.UTC)
	rid := GenerateRequestID("AAPL", ts)

	if rid == "" {
		t.Fatal("expected non-empty request id")
	}
	if !strings.HasPrefix(rid, "AAPL-") {
		t.Errorf("expected request id to start with 'AAPL-', got %s", rid)
	}
	// Verify it contains the nano timestamp
	if !strings.Contains(rid, "123456789") {
		t.Errorf("expected request id to contain nanoseconds, got %s", rid)
	}
}

func TestLogWithRequest(t *testing.T) {
	ctx := context.Background()

	// No request ID
	attrs := LogWithRequest(ctx)
	if attrs != nil {
		t.Errorf("expected nil attrs when no request id, got %v", attrs)
	}

	// With request ID set
	ctx = WithRequestID(ctx, "abc-123")
	attrs = LogWithRequest(ctx)
	if len(attrs) == 0 {
		t.Fatal("expected non-empty attrs with request id set")
	}
}
