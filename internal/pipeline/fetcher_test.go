package pipeline

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/va2ai/bvaapi2/internal/model"
)

func testHTTPConfig() model.HTTPConfig {
	return model.HTTPConfig{
		Timeout:      2 * time.Second,
		UserAgent:    "VetAI-API/1.0",
		MaxBodyBytes: 1 << 20,
		MaxRetries:   2,
		RetryBackoff: time.Millisecond,
	}
}

func TestFetch_SetsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("decision text"))
	}))
	defer srv.Close()

	f := NewFetcher(testHTTPConfig(), nil, zap.NewNop())
	body, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if body != "decision text" {
		t.Errorf("body = %q", body)
	}
	if gotUA != "VetAI-API/1.0" {
		t.Errorf("user agent = %q", gotUA)
	}
}

func TestFetch_RetriesOn500(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	f := NewFetcher(testHTTPConfig(), nil, zap.NewNop())
	body, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch failed after retries: %v", err)
	}
	if body != "recovered" {
		t.Errorf("body = %q", body)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("upstream called %d times, want 3", got)
	}
}

func TestFetch_ExhaustedRetriesIsUpstreamUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewFetcher(testHTTPConfig(), nil, zap.NewNop())
	_, err := f.Fetch(context.Background(), srv.URL)
	if !errors.Is(err, model.ErrUpstreamUnavailable) {
		t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestFetch_404IsCaseNotFoundWithoutRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewFetcher(testHTTPConfig(), nil, zap.NewNop())
	_, err := f.Fetch(context.Background(), srv.URL+"/missing.txt")
	if !errors.Is(err, model.ErrCaseNotFound) {
		t.Errorf("expected ErrCaseNotFound, got %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("404 retried: %d calls", got)
	}
}

func TestFetch_BodyCapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for i := 0; i < 100; i++ {
			_, _ = w.Write(make([]byte, 1024))
		}
	}))
	defer srv.Close()

	cfg := testHTTPConfig()
	cfg.MaxBodyBytes = 4096
	f := NewFetcher(cfg, nil, zap.NewNop())
	body, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(body) != 4096 {
		t.Errorf("body length = %d, want cap of 4096", len(body))
	}
}

func TestFetch_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewFetcher(testHTTPConfig(), nil, zap.NewNop())
	_, err := f.Fetch(ctx, srv.URL)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
