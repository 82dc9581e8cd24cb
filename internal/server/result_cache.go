package server

import (
	"sync"
	"time"
)

const cacheTTL = 5 * time.Minute

type cachedResult struct {
	body    []byte
	skipped []string
	created time.Time
}

// resultCache keeps immutable snapshots of sanitized pages keyed by
// target URL and fetch mode.
type resultCache struct {
	mu   sync.RWMutex
	now  func() time.Time
	data map[string]cachedResult
}

func newResultCache(now func() time.Time) *resultCache {
	if now == nil {
		now = time.Now
	}
	return &resultCache{
		now:  now,
		data: make(map[string]cachedResult),
	}
}

func cacheKey(target string, prerendered bool) string {
	if prerendered {
		return target + "|js"
	}
	return target
}

func (c *resultCache) Get(key string) ([]byte, []string, bool) {
	c.mu.RLock()
	entry, ok := c.data[key]
	c.mu.RUnlock()
	if !ok || c.now().Sub(entry.created) > cacheTTL {
		return nil, nil, false
	}
	return append([]byte(nil), entry.body...), append([]string(nil), entry.skipped...), true
}

func (c *resultCache) Put(key string, body []byte, skipped []string) {
	entry := cachedResult{
		body:    append([]byte(nil), body...),
		skipped: append([]string(nil), skipped...),
		created: c.now(),
	}
	c.mu.Lock()
	c.data[key] = entry
	c.mu.Unlock()
}
