package constant

import "time"

// Cache configuration constants
const (
	// CacheTTL bounds how long a good validation result can cover for an unreachable server
	CacheTTL = 24 * time.Hour
	// CacheNumCounters is the number of keys to track frequency
	CacheNumCounters = 1e4
	// CacheMaxCost is the maximum cost of cache
	CacheMaxCost = 1 << 20
	// CacheBufferItems is the number of keys per Get buffer
	CacheBufferItems = 64
)
