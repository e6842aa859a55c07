package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"gacetabo/internal/config"
)

func testRetryPolicy() *config.RetryPolicy {
	return &config.RetryPolicy{
		MaxAttempts:       3,
		InitialDelayMs:    1,
		MaxDelayMs:        10,
		BackoffMultiplier: 2.0,
		TimeoutSec:        5,
	}
}

func TestClient_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "test-agent" {
			t.Errorf("Unexpected User-Agent: %q", ua)
		}

		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer server.Close()

	c := NewClient(testRetryPolicy(), "test-agent")

	body, err := c.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if body != "<html>ok</html>" {
		t.Errorf("Unexpected body: %q", body)
	}
}

func TestClient_RetriesOnServiceUnavailable(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}

		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	c := NewClient(testRetryPolicy(), "test-agent")

	body, err := c.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if body != "ok" {
		t.Errorf("Unexpected body: %q", body)
	}

	if got := attempts.Load(); got != 3 {
		t.Errorf("Expected 3 attempts, got %d", got)
	}
}

func TestClient_NoRetryOnNotFound(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient(testRetryPolicy(), "test-agent")

	_, err := c.Fetch(context.Background(), server.URL)
	if !errors.Is(err, ErrUnexpectedStatusCode) {
		t.Fatalf("Expected ErrUnexpectedStatusCode, got %v", err)
	}

	if got := attempts.Load(); got != 1 {
		t.Errorf("Expected 1 attempt for non-retryable status, got %d", got)
	}
}

func TestClient_ExhaustsRetries(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewClient(testRetryPolicy(), "test-agent")

	_, err := c.Fetch(context.Background(), server.URL)
	if !errors.Is(err, ErrUnexpectedStatusCode) {
		t.Fatalf("Expected ErrUnexpectedStatusCode, got %v", err)
	}

	if got := attempts.Load(); got != 3 {
		t.Errorf("Expected 3 attempts, got %d", got)
	}
}

func TestClient_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(testRetryPolicy(), "test-agent")

	if _, err := c.Fetch(ctx, server.URL); err == nil {
		t.Fatal("Expected error for cancelled context")
	}
}
