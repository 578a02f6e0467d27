package fetch

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DiskCache provides persistent, file-based caching of fetched pages.
// Each entry is a JSON file keyed by a SHA-256 hash of the URL.
type DiskCache struct {
	cacheDir string
	cacheTTL time.Duration
}

// diskCacheEntry wraps a Result with an expiration timestamp.
type diskCacheEntry struct {
	Result    Result    `json:"result"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewDiskCache creates a disk cache in the given directory, creating it
// if needed.
func NewDiskCache(cacheDir string, cacheTTL time.Duration) (*DiskCache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("fetch: creating cache directory %s: %w", cacheDir, err)
	}

	return &DiskCache{
		cacheDir: cacheDir,
		cacheTTL: cacheTTL,
	}, nil
}

// Get retrieves a cached result, reporting false when absent or expired.
func (cache *DiskCache) Get(url string) (Result, bool) {
	data, err := os.ReadFile(cache.pathFor(url))
	if err != nil {
		return Result{}, false
	}

	var entry diskCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Result{}, false
	}

	if time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(cache.pathFor(url))
		return Result{}, false
	}

	return entry.Result, true
}

// Set stores a result for the given URL.
func (cache *DiskCache) Set(url string, result Result) error {
	entry := diskCacheEntry{
		Result:    result,
		ExpiresAt: time.Now().Add(cache.cacheTTL),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("fetch: marshaling cache entry: %w", err)
	}

	path := cache.pathFor(url)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("fetch: writing cache file %s: %w", path, err)
	}

	return nil
}

// pathFor returns the cache file path for a URL.
func (cache *DiskCache) pathFor(url string) string {
	hash := sha256.Sum256([]byte(url))
	return filepath.Join(cache.cacheDir, hex.EncodeToString(hash[:])+".json")
}
