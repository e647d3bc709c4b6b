// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package aggregator

import (
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/api2spec/apiref/pkg/types"
)

const indexKey = "index"

// BuildFunc produces a fresh index.
type BuildFunc func() (types.Index, error)

// RenderFunc turns an index into a response body.
type RenderFunc func(types.Index) ([]byte, error)

// Cache holds the aggregated index and pages rendered from it. Entries are
// computed on first use and live until Invalidate is called or the TTL
// elapses. A zero TTL means entries never expire.
type Cache struct {
	build BuildFunc

	mu    sync.Mutex
	index *ttlcache.Cache[string, types.Index]
	pages *ttlcache.Cache[string, []byte]
}

// NewCache creates a cache around build.
func NewCache(build BuildFunc, ttl time.Duration) *Cache {
	return &Cache{
		build: build,
		index: ttlcache.New(
			ttlcache.WithTTL[string, types.Index](ttl),
			ttlcache.WithDisableTouchOnHit[string, types.Index](),
		),
		pages: ttlcache.New(
			ttlcache.WithTTL[string, []byte](ttl),
			ttlcache.WithDisableTouchOnHit[string, []byte](),
		),
	}
}

// Index returns the cached index, building it when absent.
func (c *Cache) Index() (types.Index, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.indexLocked()
}

func (c *Cache) indexLocked() (types.Index, error) {
	if item := c.index.Get(indexKey); item != nil {
		return item.Value(), nil
	}
	idx, err := c.build()
	if err != nil {
		return nil, err
	}
	c.index.Set(indexKey, idx, ttlcache.DefaultTTL)
	return idx, nil
}

// Page returns the body cached under key, rendering it from the index when
// absent.
func (c *Cache) Page(key string, render RenderFunc) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if item := c.pages.Get(key); item != nil {
		return item.Value(), nil
	}
	idx, err := c.indexLocked()
	if err != nil {
		return nil, err
	}
	body, err := render(idx)
	if err != nil {
		return nil, err
	}
	c.pages.Set(key, body, ttlcache.DefaultTTL)
	return body, nil
}

// Invalidate drops every cached entry.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.index.DeleteAll()
	c.pages.DeleteAll()
}

// Len returns the number of cached pages.
func (c *Cache) Len() int {
	return c.pages.Len()
}
