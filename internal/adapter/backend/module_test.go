package backend

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/polkiloo/onboarding/internal/config"
)

func TestNewClientUsesConfig(t *testing.T) {
	cfg := &config.Config{BackendURL: "http://example.com/api", BackendTimeout: 3 * time.Second}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	client, err := newClient(clientParams{Config: cfg, Logger: logger})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	httpClient, ok := client.(*HTTPClient)
	if !ok {
		t.Fatalf("expected *HTTPClient, got %T", client)
	}
	if httpClient.httpClient.Timeout != 3*time.Second {
		t.Fatalf("expected timeout 3s, got %s", httpClient.httpClient.Timeout)
	}
}
