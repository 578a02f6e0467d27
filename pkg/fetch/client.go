package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Result captures one fetched page.
type Result struct {
	// URL is the final URL after redirects.
	URL string `json:"url"`

	StatusCode  int    `json:"status_code"`
	Body        string `json:"body"`
	ContentType string `json:"content_type"`
}

// RateLimiter enforces a minimum interval between requests. It is an
// explicit object owned by the client, so independent pipelines (and
// tests) do not interfere through shared process state.
type RateLimiter struct {
	mu          sync.Mutex
	minInterval time.Duration
	last        time.Time
}

// NewRateLimiter creates a limiter with the given minimum interval.
func NewRateLimiter(minInterval time.Duration) *RateLimiter {
	return &RateLimiter{minInterval: minInterval}
}

// Wait blocks until the minimum interval since the previous request has
// elapsed, or the context is done.
func (l *RateLimiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	now := time.Now()
	next := l.last.Add(l.minInterval)
	if next.Before(now) {
		next = now
	}
	l.last = next
	l.mu.Unlock()

	delay := time.Until(next)
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Client fetches portal pages with rate limiting, retry with exponential
// backoff on HTTP 429 and 5xx, and optional disk caching.
type Client struct {
	config     Config
	httpClient *http.Client
	limiter    *RateLimiter
	cache      *DiskCache
}

// NewClient creates a Client from the given configuration. A cache
// directory failure is returned rather than silently disabling caching.
func NewClient(config Config) (*Client, error) {
	client := &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    NewRateLimiter(config.RateLimit),
	}

	if config.CacheDir != "" {
		cache, err := NewDiskCache(config.CacheDir, config.CacheTTL)
		if err != nil {
			return nil, err
		}
		client.cache = cache
	}

	return client, nil
}

// Get fetches a URL. HTTP 429 and 5xx responses are retried with
// exponential backoff (RetryBase, doubling, MaxRetries attempts); any
// other non-200 status or exhausted retries is a hard failure.
func (c *Client) Get(ctx context.Context, pageURL string) (*Result, error) {
	if c.cache != nil {
		if cached, ok := c.cache.Get(pageURL); ok {
			return &cached, nil
		}
	}

	backoff := c.config.RetryBase
	var lastStatus int

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepContext(ctx, backoff); err != nil {
				return nil, err
			}
			backoff *= 2
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		result, retryable, err := c.fetchOnce(ctx, pageURL)
		if err != nil {
			return nil, err
		}
		if result != nil {
			if c.cache != nil {
				_ = c.cache.Set(pageURL, *result)
			}
			return result, nil
		}
		lastStatus = retryable
	}

	return nil, fmt.Errorf("fetch: retries exhausted for %s (last HTTP %d)", pageURL, lastStatus)
}

// fetchOnce performs one request. It returns a non-nil Result on HTTP
// 200, a retryable status code on 429/5xx, and a hard error otherwise.
func (c *Client) fetchOnce(ctx context.Context, pageURL string) (*Result, int, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch: building request for %s: %w", pageURL, err)
	}
	request.Header.Set("User-Agent", c.config.UserAgent)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch: request to %s failed: %w", pageURL, err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusTooManyRequests || response.StatusCode >= 500 {
		io.Copy(io.Discard, response.Body)
		return nil, response.StatusCode, nil
	}
	if response.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("fetch: %s returned HTTP %d", pageURL, response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch: reading body of %s: %w", pageURL, err)
	}

	return &Result{
		URL:         response.Request.URL.String(),
		StatusCode:  response.StatusCode,
		Body:        string(body),
		ContentType: response.Header.Get("Content-Type"),
	}, 0, nil
}

// HistoryURL returns the revision-history listing URL for a law,
// {base}/{year}/{number}/.
func (c *Client) HistoryURL(year, number int) string {
	return fmt.Sprintf("%s/%d/%d/", strings.TrimRight(c.config.BaseURL, "/"), year, number)
}

// VersionURL returns the dated version URL for a law,
// {base}/{year}/{number}/{revisionPath}.
func (c *Client) VersionURL(year, number int, revisionPath string) string {
	return fmt.Sprintf("%s/%d/%d/%s", strings.TrimRight(c.config.BaseURL, "/"), year, number, strings.TrimLeft(revisionPath, "/"))
}

// ResolveLink resolves a (possibly relative) history-row link against
// the base URL.
func (c *Client) ResolveLink(link string) (string, error) {
	base, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return "", fmt.Errorf("fetch: invalid base URL %q: %w", c.config.BaseURL, err)
	}
	ref, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("fetch: invalid link %q: %w", link, err)
	}
	return base.ResolveReference(ref).String(), nil
}

// sleepContext sleeps for the given duration unless the context ends.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
