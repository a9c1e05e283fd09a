package cache

import "time"

// BytesCache stores serialized snapshots as raw bytes with a TTL. Callers
// marshal before writing so the Redis and in-process backends stay
// interchangeable.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}
