// Package filtercache caches the aggregates behind vacancy filter
// dropdowns (popular tags, organisations and cities). The aggregates are
// cheap to serve stale, so listings never hit GROUP BY queries on every
// request.
package filtercache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache keys for the filter aggregates.
const (
	KeyPopularTags          = "filters:tags"
	KeyPopularOrganisations = "filters:organisations"
	KeyPopularCities        = "filters:cities"
)

// Cache is an in-memory TTL cache for filter aggregates.
type Cache struct {
	cache *cache.Cache
}

// New creates a Cache with the given default TTL and cleanup interval.
func New(defaultExpiration, cleanupInterval time.Duration) *Cache {
	return &Cache{cache: cache.New(defaultExpiration, cleanupInterval)}
}

func (c *Cache) Set(key string, value interface{}, duration time.Duration) {
	c.cache.Set(key, value, duration)
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.cache.Get(key)
}

func (c *Cache) Delete(key string) {
	c.cache.Delete(key)
}

// Invalidate drops every filter aggregate. Called after vacancy writes so
// dropdowns pick up new tags and cities on the next read.
func (c *Cache) Invalidate() {
	c.Delete(KeyPopularTags)
	c.Delete(KeyPopularOrganisations)
	c.Delete(KeyPopularCities)
}

// GetOrSet returns the cached value for key, or runs loader and caches
// its result for duration.
func (c *Cache) GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error) {
	if val, found := c.Get(key); found {
		return val, nil
	}

	val, err := loader()
	if err != nil {
		return nil, err
	}

	c.Set(key, val, duration)
	return val, nil
}
