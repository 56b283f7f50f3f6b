package view

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache holds rendered view payloads keyed by path plus query string. A write
// to the underlying data marks every view under the path stale by dropping it,
// so the next render re-reads from storage.
type Cache struct {
	views *gocache.Cache
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		views: gocache.New(ttl, 2*ttl),
	}
}

func (c *Cache) Get(key string) ([]byte, bool) {
	v, ok := c.views.Get(key)
	if !ok {
		return nil, false
	}

	return v.([]byte), true
}

func (c *Cache) Put(key string, payload []byte) {
	c.views.Set(key, payload, gocache.DefaultExpiration)
}

// Invalidate drops every cached view whose key starts with pathPrefix.
func (c *Cache) Invalidate(pathPrefix string) {
	for key := range c.views.Items() {
		if strings.HasPrefix(key, pathPrefix) {
			c.views.Delete(key)
		}
	}
}
