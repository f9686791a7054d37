package providers

import (
	"strings"

	"doorbelld/internal/structures"
)

// InstrumentedCache reports response cache traffic per view. A view is the
// key prefix before the first colon, so "events:14-11-2023:today:asc:false"
// is counted under events.
type InstrumentedCache struct {
	inner   CacheProviderInterface
	metrics MetricsProviderInterface
}

func cacheView(key string) string {
	view, _, _ := strings.Cut(key, ":")
	return view
}

func (c *InstrumentedCache) Get(key string) ([]byte, bool) {
	body, ok := c.inner.Get(key)
	if !ok {
		c.metrics.IncCacheMisses(cacheView(key))
		return nil, false
	}
	c.metrics.IncCacheHits(cacheView(key))
	return body, true
}

func (c *InstrumentedCache) Set(key string, body []byte) {
	c.inner.Set(key, body)
}

// Clear drops every cached response. Captures, deletes and settled
// recordings all invalidate the whole cache.
func (c *InstrumentedCache) Clear() {
	c.metrics.IncCacheInvalidations()
	c.inner.Clear()
}

// NewInstrumentedCacheProvider returns the response cache used by the
// controllers. With caching disabled the noop cache is returned bare, since
// every request would otherwise show up as a miss.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if _, disabled := inner.(*noopCache); disabled {
		return inner
	}
	return &InstrumentedCache{inner: inner, metrics: metrics}
}
