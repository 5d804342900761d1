// Package cache holds resolved query answers so that a repeated
// question is served without re-running its handler.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey generates a cache key from a query text. Lookups are
// case-insensitive: "Hver er X" and "hver er x" share an answer.
func CacheKey(qtext string) string {
	hash := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(qtext))))
	return "spyrja:v1:" + hex.EncodeToString(hash[:])
}
