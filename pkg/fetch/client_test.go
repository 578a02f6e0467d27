package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// testConfig returns a config pointed at the test server with pacing
// small enough for unit tests.
func testConfig(baseURL string) Config {
	config := DefaultConfig()
	config.BaseURL = baseURL
	config.RateLimit = time.Millisecond
	config.RetryBase = time.Millisecond
	return config
}

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html>obsah</html>"))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	result, err := client.Get(context.Background(), server.URL+"/2005/300/")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if result.StatusCode != 200 || result.Body != "<html>obsah</html>" {
		t.Errorf("unexpected result: %+v", result)
	}
	if !strings.HasPrefix(result.ContentType, "text/html") {
		t.Errorf("ContentType = %q", result.ContentType)
	}
}

func TestClient_RetriesOn429ThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	result, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get failed after retryable statuses: %v", err)
	}
	if result.Body != "ok" {
		t.Errorf("Body = %q", result.Body)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 requests, got %d", calls.Load())
	}
}

func TestClient_RetriesExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	config := testConfig(server.URL)
	config.MaxRetries = 1

	client, err := NewClient(config)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	if _, err := client.Get(context.Background(), server.URL); err == nil {
		t.Error("expected error after exhausted retries")
	}
}

func TestClient_HardFailureNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	if _, err := client.Get(context.Background(), server.URL); err == nil {
		t.Error("expected hard failure on HTTP 404")
	}
	if calls.Load() != 1 {
		t.Errorf("404 must not be retried, got %d requests", calls.Load())
	}
}

func TestClient_DiskCacheHit(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte("telo stránky"))
	}))
	defer server.Close()

	config := testConfig(server.URL)
	config.CacheDir = t.TempDir()

	client, err := NewClient(config)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		result, err := client.Get(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("Get %d failed: %v", i, err)
		}
		if result.Body != "telo stránky" {
			t.Errorf("Body = %q", result.Body)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 upstream request with cache, got %d", calls.Load())
	}
}

func TestRateLimiter_EnforcesSpacing(t *testing.T) {
	limiter := NewRateLimiter(30 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := limiter.Wait(ctx); err != nil {
			t.Fatalf("Wait failed: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 60*time.Millisecond {
		t.Errorf("three requests spaced %v apart, want >= 60ms", elapsed)
	}
}

func TestRateLimiter_ContextCancel(t *testing.T) {
	limiter := NewRateLimiter(time.Hour)
	ctx := context.Background()
	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("first Wait failed: %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := limiter.Wait(cancelled); err == nil {
		t.Error("expected context error from Wait")
	}
}

func TestClient_URLShapes(t *testing.T) {
	config := DefaultConfig()
	config.BaseURL = "https://example.sk/pravne-predpisy/SK/ZZ"
	client, err := NewClient(config)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	if got := client.HistoryURL(2005, 300); got != "https://example.sk/pravne-predpisy/SK/ZZ/2005/300/" {
		t.Errorf("HistoryURL = %q", got)
	}
	if got := client.VersionURL(2005, 300, "20090901.html"); got != "https://example.sk/pravne-predpisy/SK/ZZ/2005/300/20090901.html" {
		t.Errorf("VersionURL = %q", got)
	}

	resolved, err := client.ResolveLink("/SK/ZZ/2005/300/20090901.html")
	if err != nil {
		t.Fatalf("ResolveLink failed: %v", err)
	}
	if resolved != "https://example.sk/SK/ZZ/2005/300/20090901.html" {
		t.Errorf("ResolveLink = %q", resolved)
	}
}
