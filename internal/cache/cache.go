// Package cache holds values up to a total byte budget, evicting least
// recently used entries first.
package cache

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Config holds the configuration for the cache
type Config struct {
	MaxSizeBytes int `split_words:"true" default:"1048576"` // Default to 1MB
}

// Cache implements a cache with a total byte size limit
type Cache struct {
	name        string
	cache       *lru.Cache[string, []byte]
	currentSize int
	maxSize     int
	mu          sync.Mutex

	lookups metric.Int64Counter
}

// New creates a new cache with a total byte size limit. The name labels the
// cache's metrics.
func New(name string, cfg Config) (*Cache, error) {
	// Initialize with a reasonable max items count (1024)
	// The actual limit will be enforced by the size checks
	cache, err := lru.New[string, []byte](1024)
	if err != nil {
		return nil, err
	}

	lookups, err := otel.Meter("github.com/dynoinc/sdjournal/internal/cache").Int64Counter(
		"sdjournal.cache.lookups",
		metric.WithDescription("Cache lookups by result"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating lookups counter: %w", err)
	}

	return &Cache{
		name:    name,
		cache:   cache,
		maxSize: cfg.MaxSizeBytes,
		lookups: lookups,
	}, nil
}

// Add adds a key-value pair to the cache, respecting size limits. It reports
// whether the value was stored.
func (c *Cache) Add(key string, value []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.add(key, value)
}

func (c *Cache) add(key string, value []byte) bool {
	// Check if the single item is too large for the cache
	if len(value) > c.maxSize {
		return false
	}

	// If the key exists, remove its size from the current total
	if oldValue, found := c.cache.Peek(key); found {
		c.currentSize -= len(oldValue)
		c.cache.Remove(key)
	}

	// Remove oldest items until we have enough space
	for c.currentSize+len(value) > c.maxSize && c.cache.Len() > 0 {
		oldestKey, oldestValue, _ := c.cache.GetOldest()
		c.cache.Remove(oldestKey)
		c.currentSize -= len(oldestValue)
	}

	evicted := c.cache.Add(key, value)
	if evicted {
		// The item count bound kicked in; recompute from what is left.
		c.currentSize = 0
		for _, k := range c.cache.Keys() {
			v, _ := c.cache.Peek(k)
			c.currentSize += len(v)
		}
		return true
	}
	c.currentSize += len(value)
	return true
}

// Get retrieves a value from the cache
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cache.Get(key)
}

// Size returns the number of bytes currently held.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.currentSize
}

// GetOrLoad returns the cached value for key, calling load on a miss. Errors
// from load are not cached.
func (c *Cache) GetOrLoad(ctx context.Context, key string, load func() ([]byte, error)) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.cache.Get(key); ok {
		c.lookups.Add(ctx, 1, metric.WithAttributes(attribute.String("cache", c.name), attribute.String("result", "hit")))
		return v, nil
	}
	c.lookups.Add(ctx, 1, metric.WithAttributes(attribute.String("cache", c.name), attribute.String("result", "miss")))

	v, err := load()
	if err != nil {
		return nil, err
	}
	c.add(key, v)
	return v, nil
}
