package cache

// instrumentedCache counts lookups, stores and invalidations of the wrapped
// cache under a group label and exposes its size as a gauge.
type instrumentedCache struct {
	Cache
	group string
}

func newInstrumentedCache(inner Cache, group string) *instrumentedCache {
	registerEntriesCollector(group, inner.Len)
	return &instrumentedCache{Cache: inner, group: group}
}

func (c *instrumentedCache) Get(key string) ([]byte, bool) {
	val, ok := c.Cache.Get(key)
	counter := MissesTotal
	if ok {
		counter = HitsTotal
	}
	counter.WithLabelValues(c.group).Inc()
	return val, ok
}

func (c *instrumentedCache) Set(key string, value []byte) {
	c.Cache.Set(key, value)
	StoresTotal.WithLabelValues(c.group).Inc()
}

// Delete only counts keys that were present.
func (c *instrumentedCache) Delete(key string) {
	if c.Cache.Contains(key) {
		InvalidationsTotal.WithLabelValues(c.group).Inc()
	}
	c.Cache.Delete(key)
}

// Close unregisters the entries gauge and closes the wrapped cache.
func (c *instrumentedCache) Close() error {
	unregisterEntriesCollector(c.group)
	return c.Cache.Close()
}
