package catalog

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const unitsKey = "units"

// Ensure Cached implements Catalog
var _ Catalog = (*Cached)(nil)

// Cached wraps a Catalog with a short-TTL cache. The catalog is only
// consulted while a plant-scoped editing surface is active, so entries
// age out quickly rather than being invalidated explicitly.
type Cached struct {
	inner Catalog
	cache *expirable.LRU[string, []Unit]
}

// NewCached creates a Cached catalog with the given TTL.
func NewCached(inner Catalog, ttl time.Duration) *Cached {
	return &Cached{
		inner: inner,
		cache: expirable.NewLRU[string, []Unit](1, nil, ttl),
	}
}

// Units returns the cached unit list, refreshing it from the inner
// catalog when the cache entry has expired.
func (c *Cached) Units(ctx context.Context) ([]Unit, error) {
	if units, ok := c.cache.Get(unitsKey); ok {
		return units, nil
	}

	units, err := c.inner.Units(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.Add(unitsKey, units)
	return units, nil
}

// Invalidate drops the cached unit list.
func (c *Cached) Invalidate() {
	c.cache.Remove(unitsKey)
}
