package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// TestFetchWithRetry tests the exponential backoff retry loop.
func TestFetchWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("retries transient failures until success", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte("recovered"))
		}))
		defer srv.Close()

		client := NewClient(5 * time.Second)
		body, err := client.FetchWithRetry(context.Background(), srv.URL, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(body) != "recovered" {
			t.Errorf("body = %q", body)
		}
		if got := calls.Load(); got != 3 {
			t.Errorf("server saw %d requests, expected 3", got)
		}
	})

	t.Run("permanent failures are not retried", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		client := NewClient(5 * time.Second)
		_, err := client.FetchWithRetry(context.Background(), srv.URL, 3)

		var httpErr *HTTPError
		if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusNotFound {
			t.Fatalf("expected 404 HTTPError, got %v", err)
		}
		if got := calls.Load(); got != 1 {
			t.Errorf("server saw %d requests, expected 1", got)
		}
	})

	t.Run("retry budget is bounded", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := NewClient(5 * time.Second)
		if _, err := client.FetchWithRetry(context.Background(), srv.URL, 2); err == nil {
			t.Fatal("expected an error after exhausting retries")
		}
		// First attempt plus two retries.
		if got := calls.Load(); got != 3 {
			t.Errorf("server saw %d requests, expected 3", got)
		}
	})

	t.Run("zero retry budget fetches once", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := NewClient(5 * time.Second)
		if _, err := client.FetchWithRetry(context.Background(), srv.URL, 0); err == nil {
			t.Fatal("expected an error")
		}
		if got := calls.Load(); got != 1 {
			t.Errorf("server saw %d requests, expected 1", got)
		}
	})
}
