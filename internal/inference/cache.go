package inference

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/IgorHWebDev/healthcare-sim/internal/llm"
)

// Cache is an exact-match response cache keyed by a prompt digest.
// Entries expire after the configured TTL; expired entries are treated as
// absent on lookup. Growth is bounded by the number of distinct prompts,
// not by request volume, so no eviction beyond TTL is applied.
type Cache struct {
	entries *gocache.Cache
}

// NewCache creates a Cache whose entries expire after ttl.
func NewCache(ttl time.Duration) *Cache {
	// Purge expired items every ttl/4 so the map does not accumulate
	// stale entries between lookups.
	purge := ttl / 4
	if purge < time.Minute {
		purge = time.Minute
	}
	return &Cache{entries: gocache.New(ttl, purge)}
}

// CacheKey computes the content address for a request: a SHA-256 digest of
// the model, system prompt, messages, and schema name. Two requests with
// the same key would produce interchangeable responses.
func CacheKey(modelID string, req llm.Request) string {
	h := sha256.New()
	h.Write([]byte(modelID))
	h.Write([]byte{0})
	h.Write([]byte(req.System))
	h.Write([]byte{0})
	data, _ := json.Marshal(req.Messages)
	h.Write(data)
	if req.Schema != nil {
		h.Write([]byte{0})
		h.Write([]byte(req.Schema.Name))
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Lookup returns the cached response content for key, or false if the key
// is absent or expired.
func (c *Cache) Lookup(key string) (json.RawMessage, bool) {
	v, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	return v.(json.RawMessage), true
}

// Store unconditionally overwrites the entry for key, resetting its TTL.
func (c *Cache) Store(key string, content json.RawMessage) {
	c.entries.Set(key, content, gocache.DefaultExpiration)
}

// Len returns the number of live entries, including not-yet-purged
// expired ones.
func (c *Cache) Len() int {
	return c.entries.ItemCount()
}
