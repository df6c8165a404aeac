package dataset

import (
	"fmt"
	"strings"
	"sync"
)

// Cache memoizes datasets by entity and seed so repeated interactions see the same history.
type Cache struct {
	mu    sync.RWMutex
	items map[string]Dataset
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		items: make(map[string]Dataset),
	}
}

func cacheKey(entityID string, seed int64) string {
	return fmt.Sprintf("%s#%d", entityID, seed)
}

// Get returns the cached dataset, if any.
func (c *Cache) Get(entityID string, seed int64) (Dataset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ds, ok := c.items[cacheKey(entityID, seed)]
	return ds, ok
}

// Put stores a dataset under its own entity ID and seed.
func (c *Cache) Put(ds Dataset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[cacheKey(ds.Entity.ID, ds.Seed)] = ds
}

// Len returns the number of cached datasets.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Invalidate drops every dataset of the entity. An empty ID clears the cache.
func (c *Cache) Invalidate(entityID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entityID == "" {
		n := len(c.items)
		c.items = make(map[string]Dataset)
		return n
	}

	removed := 0
	prefix := entityID + "#"
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
			removed++
		}
	}
	return removed
}
