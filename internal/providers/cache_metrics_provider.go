package providers

import (
	"puzzlestats/internal/structures"
	"strings"
)

// MetricsCacheProvider counts hits and misses per key namespace, the part
// of the key before the first colon.
type MetricsCacheProvider struct {
	inner   CacheProviderInterface
	metrics MetricsProviderInterface
}

func (c *MetricsCacheProvider) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if ok {
		c.metrics.IncCacheHits(cacheNamespace(key))
	} else {
		c.metrics.IncCacheMisses(cacheNamespace(key))
	}
	return val, ok
}

func (c *MetricsCacheProvider) Set(key string, value []byte) {
	c.inner.Set(key, value)
}

func cacheNamespace(key string) string {
	ns, _, found := strings.Cut(key, ":")
	if !found || ns == "" {
		return "default"
	}
	return ns
}

// NewInstrumentedCacheProvider wraps the cache with hit/miss counters.
// A disabled cache is returned bare so it does not report phantom misses.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if !conf.Cache.Enabled {
		return inner
	}
	return &MetricsCacheProvider{
		inner:   inner,
		metrics: metrics,
	}
}
