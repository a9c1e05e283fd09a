package cache

import (
	"sync"
	"time"
)

// TTLCache is the in-process BytesCache used when Redis is not configured.
// Expired entries are evicted lazily on read; with one snapshot key live at
// a time there is nothing to sweep.
type TTLCache struct {
	mu sync.RWMutex
	m  map[string]ttlEntry
}

type ttlEntry struct {
	b   []byte
	exp time.Time
}

func NewTTLCache() *TTLCache {
	return &TTLCache{m: make(map[string]ttlEntry)}
}

func (c *TTLCache) GetBytes(key string) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		c.mu.Lock()
		delete(c.m, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return e.b, true, nil
}

// SetBytes stores value under key. A non-positive ttl means no expiry.
func (c *TTLCache) SetBytes(key string, value []byte, ttl time.Duration) error {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.m[key] = ttlEntry{b: value, exp: exp}
	c.mu.Unlock()
	return nil
}
