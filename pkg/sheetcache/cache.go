package sheetcache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultTTL is how long a formatted series stays fresh before the next
// request goes back to the spreadsheet.
const DefaultTTL = 5 * time.Minute

// Cache is an in-memory TTL store shared by all requests. Entries past
// their TTL are treated as absent. There is no size bound; the service
// only ever stores one key.
type Cache struct {
	ttl   time.Duration
	store *gocache.Cache
}

// New returns a cache whose entries expire after ttl. A zero or negative
// ttl falls back to DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:   ttl,
		store: gocache.New(ttl, 2*ttl),
	}
}

// Get returns the value for key, or false when the key is missing or its
// TTL has elapsed.
func (c *Cache) Get(key string) (interface{}, bool) {
	return c.store.Get(key)
}

// Set stores value under key and restarts the TTL window.
func (c *Cache) Set(key string, value interface{}) {
	c.store.Set(key, value, c.ttl)
}

// Delete removes key immediately. Deleting an absent key is a no-op.
func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}
