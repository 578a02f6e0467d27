// Package fetch provides the rate-limited HTTP client used to retrieve
// statute pages from the legal portal.
package fetch

import "time"

// DefaultBaseURL is the portal's statute collection root.
const DefaultBaseURL = "https://www.slov-lex.sk/pravne-predpisy/SK/ZZ"

// DefaultRateLimit is the minimum spacing between portal requests.
const DefaultRateLimit = 1200 * time.Millisecond

// DefaultRetryBase is the initial backoff after a retryable response;
// it doubles on every further attempt.
const DefaultRetryBase = 2 * time.Second

// DefaultMaxRetries is the number of retries after the first attempt.
const DefaultMaxRetries = 3

// DefaultTimeout is the per-request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultCacheTTL is the time-to-live for disk-cached page bodies.
const DefaultCacheTTL = 24 * time.Hour

// DefaultUserAgent is the User-Agent header sent with portal requests.
const DefaultUserAgent = "slovlex-ingester/1.0"

// Config holds configuration for a Client.
type Config struct {
	// BaseURL is the statute collection root used by the URL builders.
	BaseURL string

	// RateLimit is the minimum interval between requests.
	RateLimit time.Duration

	// RetryBase is the initial backoff for HTTP 429 and 5xx responses.
	RetryBase time.Duration

	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// CacheDir enables persistent body caching when non-empty.
	CacheDir string

	// CacheTTL is the time-to-live for cached bodies.
	CacheTTL time.Duration

	// UserAgent is the User-Agent header sent with requests.
	UserAgent string
}

// DefaultConfig returns a Config with the portal's required pacing.
func DefaultConfig() Config {
	return Config{
		BaseURL:    DefaultBaseURL,
		RateLimit:  DefaultRateLimit,
		RetryBase:  DefaultRetryBase,
		MaxRetries: DefaultMaxRetries,
		Timeout:    DefaultTimeout,
		CacheTTL:   DefaultCacheTTL,
		UserAgent:  DefaultUserAgent,
	}
}
