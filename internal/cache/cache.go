package cache

// EvictCallback is called when an entry is evicted from the cache.
// Not all providers report the evicted value (Redis passes nil).
type EvictCallback func(key string, value []byte)

// Logger receives error reports from providers whose operations can fail
// at runtime (network backends). Cache methods never return these errors.
type Logger interface {
	Error(msg string, err error)
}

// Cache stores serialized HTTP responses keyed by request URL.
// Entries expire after the configured TTL, which is the freshness window of
// every page fetched from the site. Implementations must be safe for
// concurrent use since all per-file workflows share one cache.
type Cache interface {
	// Get retrieves a value by key. Returns the value and true if found, or nil and false if not.
	Get(key string) ([]byte, bool)

	// Set stores a value with the given key. If the key already exists, it is overwritten
	// and its freshness window restarts.
	Set(key string, value []byte)

	// Delete removes a key. Deleting an absent key is a no-op.
	Delete(key string)

	// Contains checks whether a key exists in the cache without affecting LRU ordering.
	Contains(key string) bool

	// Len returns the number of entries currently in the cache.
	Len() int

	// Close releases any resources held by the cache (e.g., network connections).
	Close() error
}
