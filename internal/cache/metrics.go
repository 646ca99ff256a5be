package cache

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Response cache metrics. All metrics carry a "cache" label whose value is the
// Group set in ProviderConfig.
var (
	// HitsTotal counts requests answered from the cache.
	HitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "addic7ed",
			Name:      "http_cache_hits_total",
			Help:      "Total number of HTTP responses served from the cache.",
		},
		[]string{"cache"},
	)

	// MissesTotal counts requests that had to reach the site.
	MissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "addic7ed",
			Name:      "http_cache_misses_total",
			Help:      "Total number of HTTP cache misses.",
		},
		[]string{"cache"},
	)

	// StoresTotal counts responses written to the cache.
	StoresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "addic7ed",
			Name:      "http_cache_stores_total",
			Help:      "Total number of HTTP responses stored in the cache.",
		},
		[]string{"cache"},
	)

	// InvalidationsTotal counts entries dropped explicitly, e.g. unreadable responses.
	InvalidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "addic7ed",
			Name:      "http_cache_invalidations_total",
			Help:      "Total number of cached responses removed before expiry.",
		},
		[]string{"cache"},
	)

	// EvictionsTotal counts evicted entries per group.
	EvictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "addic7ed",
			Name:      "http_cache_evictions_total",
			Help:      "Total number of responses evicted from the cache.",
		},
		[]string{"cache"},
	)
)

func init() {
	prometheus.MustRegister(
		HitsTotal,
		MissesTotal,
		StoresTotal,
		InvalidationsTotal,
		EvictionsTotal,
	)
}

// cacheEntriesCollector reports the current number of entries for a single
// cache group by calling lenFunc at scrape time.
type cacheEntriesCollector struct {
	desc    *prometheus.Desc
	lenFunc func() int
}

func (c *cacheEntriesCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *cacheEntriesCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(c.lenFunc()))
}

var (
	entriesCollectorMu sync.Mutex
	entriesCollectors  = make(map[string]*cacheEntriesCollector)
	// entriesReg is swapped by tests for an isolated registry.
	entriesReg prometheus.Registerer = prometheus.DefaultRegisterer
)

// registerEntriesCollector registers a per-group entries collector, replacing
// any collector previously registered for the same group.
func registerEntriesCollector(group string, lenFunc func() int) *cacheEntriesCollector {
	desc := prometheus.NewDesc(
		"addic7ed_http_cache_entries",
		"Current number of responses in the cache.",
		nil,
		prometheus.Labels{"cache": group},
	)
	c := &cacheEntriesCollector{desc: desc, lenFunc: lenFunc}

	entriesCollectorMu.Lock()
	defer entriesCollectorMu.Unlock()

	if old, ok := entriesCollectors[group]; ok {
		entriesReg.Unregister(old)
	}
	entriesCollectors[group] = c
	_ = entriesReg.Register(c)
	return c
}

// unregisterEntriesCollector removes the entries collector for the given group.
func unregisterEntriesCollector(group string) {
	entriesCollectorMu.Lock()
	defer entriesCollectorMu.Unlock()

	if c, ok := entriesCollectors[group]; ok {
		entriesReg.Unregister(c)
		delete(entriesCollectors, group)
	}
}
