// Package cache provides a layered (memory + disk) cache keyed by content
// hash. It backs the validation step: external schema validation is slow,
// and an unchanged instance always validates to the same report.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the common interface over the memory, disk and layered caches.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from content bytes. Identical instance documents
// share a key regardless of where they were written.
func Key(content []byte) string {
	hash := sha256.Sum256(content)
	return "xbrlgen:v1:" + hex.EncodeToString(hash[:])
}
