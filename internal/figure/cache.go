package figure

import (
	"fmt"

	"github.com/dgraph-io/ristretto"

	"github.com/dbsmedya/launchdash/internal/config"
)

// Cache holds rendered SVG documents keyed by Figure.Key. A nil or disabled
// Cache misses on every lookup.
type Cache struct {
	store *ristretto.Cache
}

// NewCache builds a cache sized by cfg. When caching is disabled it returns
// a Cache that never stores anything.
func NewCache(cfg config.CacheConfig) (*Cache, error) {
	if !cfg.Enabled {
		return &Cache{}, nil
	}
	store, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCostKB << 10,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chart cache: %w", err)
	}
	return &Cache{store: store}, nil
}

// Get returns the cached SVG for key.
func (c *Cache) Get(key string) ([]byte, bool) {
	if c == nil || c.store == nil || key == "" {
		return nil, false
	}
	v, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}
	svg, ok := v.([]byte)
	return svg, ok
}

// Set stores svg under key, costed by its size in bytes. Admission is
// asynchronous; call Wait to make a Set visible to Get immediately.
func (c *Cache) Set(key string, svg []byte) {
	if c == nil || c.store == nil || key == "" {
		return
	}
	c.store.Set(key, svg, int64(len(svg)))
}

// Wait blocks until pending writes are applied.
func (c *Cache) Wait() {
	if c == nil || c.store == nil {
		return
	}
	c.store.Wait()
}

// Close stops the cache's background goroutines.
func (c *Cache) Close() {
	if c == nil || c.store == nil {
		return
	}
	c.store.Close()
}
