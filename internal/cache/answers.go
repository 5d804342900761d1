package cache

import (
	"encoding/json"
	"time"
)

// CachedAnswer is the serialized form of a resolved answer
type CachedAnswer struct {
	Answer json.RawMessage `json:"answer"`
	Voice  string          `json:"voice,omitempty"`
}

// AnswerCache caches resolved answers keyed by normalized query text.
// Queries that set their own expiry override the default TTL.
type AnswerCache struct {
	cache Cache
	ttl   time.Duration
	now   func() time.Time
}

// NewAnswerCache creates an answer cache with the given default TTL
func NewAnswerCache(defaultTTL time.Duration) *AnswerCache {
	return &AnswerCache{
		cache: NewMemoryCache(defaultTTL, 10*time.Minute),
		ttl:   defaultTTL,
		now:   time.Now,
	}
}

// Lookup returns the cached answer for a query text, if any
func (a *AnswerCache) Lookup(qtext string) (*CachedAnswer, bool) {
	data, found := a.cache.Get(CacheKey(qtext))
	if !found {
		return nil, false
	}
	var ca CachedAnswer
	if err := json.Unmarshal(data, &ca); err != nil {
		// Unreadable entry; drop it
		a.cache.Delete(CacheKey(qtext))
		return nil, false
	}
	return &ca, true
}

// Store caches a resolved answer. A zero expires uses the default TTL;
// an expiry in the past stores nothing.
func (a *AnswerCache) Store(qtext string, answer interface{}, voice string, expires time.Time) error {
	ttl := a.ttl
	if !expires.IsZero() {
		ttl = expires.Sub(a.now())
		if ttl <= 0 {
			return nil
		}
	}
	raw, err := json.Marshal(answer)
	if err != nil {
		return err
	}
	data, err := json.Marshal(CachedAnswer{Answer: raw, Voice: voice})
	if err != nil {
		return err
	}
	return a.cache.Set(CacheKey(qtext), data, ttl)
}
