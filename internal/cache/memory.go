package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/va2ai/bvaapi2/internal/model"
)

// MemoryCache is an in-memory RecordCache. Construct one per request and
// drop it with the request; the zero cleanup interval means no background
// janitor goroutine is spawned for these short-lived instances.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a request-scoped record cache.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(ttl, 0),
	}
}

// Get retrieves a cached record by document URL.
func (c *MemoryCache) Get(url string) (*model.CaseRecord, bool) {
	if val, found := c.cache.Get(Key(url)); found {
		return val.(*model.CaseRecord), true
	}
	return nil, false
}

// Set stores a record under its document URL.
func (c *MemoryCache) Set(url string, rec *model.CaseRecord) {
	c.cache.Set(Key(url), rec, gocache.DefaultExpiration)
}
