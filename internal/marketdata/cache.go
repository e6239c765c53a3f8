package marketdata

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Cache is a file-backed response cache. Entries older than the TTL are
// treated as missing and removed on read.
type Cache struct {
	dir string
	ttl time.Duration
	mu  sync.RWMutex
}

type cacheEntry struct {
	Key       string    `json:"key"`
	Data      []byte    `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// NewCache returns nil when dir is empty or ttl is not positive; a nil *Cache
// is a valid, always-missing cache.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" || ttl <= 0 {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

func (c *Cache) Get(key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	path := c.path(key)
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) > c.ttl {
		os.Remove(path)
		return nil, false
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var entry cacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil || entry.Key != key {
		return nil, false
	}
	return entry.Data, true
}

func (c *Cache) Set(key string, data []byte) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := json.Marshal(cacheEntry{Key: key, Data: data, Timestamp: time.Now()})
	if err != nil {
		return err
	}
	return os.WriteFile(c.path(key), raw, 0o644)
}

// CleanupExpired removes every expired entry from the cache directory
func (c *Cache) CleanupExpired() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) > c.ttl {
			os.Remove(filepath.Join(c.dir, e.Name()))
		}
	}
	return nil
}

// GetOrFetch serves key from the cache or calls fetch and stores its result.
// Fetch errors are never cached.
func (c *Cache) GetOrFetch(key string, fetch func() ([]byte, error)) ([]byte, error) {
	if data, ok := c.Get(key); ok {
		return data, nil
	}
	data, err := fetch()
	if err != nil {
		return nil, err
	}
	_ = c.Set(key, data)
	return data, nil
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, fmt.Sprintf("%x.json", md5.Sum([]byte(key))))
}

func MakeKey(parts ...string) string {
	return strings.Join(parts, "|")
}
