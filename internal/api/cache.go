package api

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// PageCache is an in-memory LRU cache of fetched result pages, keyed by
// (mode, query-or-file, page, perPage). It only lives for the session
// and is flushed wholesale on every search reset, so a stale backend
// index never outlives the current result list.
type PageCache struct {
	lru *lru.Cache[string, []Hit]
}

// NewPageCache creates a cache holding up to size pages.
// size <= 0 returns a nil cache; all methods on a nil cache are no-ops.
func NewPageCache(size int) *PageCache {
	if size <= 0 {
		return nil
	}
	// Only fails for size <= 0, which is handled above.
	c, err := lru.New[string, []Hit](size)
	if err != nil {
		return nil
	}
	return &PageCache{lru: c}
}

// pageKey builds the cache key for one fetched page.
func pageKey(mode, query string, page, perPage int) string {
	return fmt.Sprintf("%s\x00%s\x00%d\x00%d", mode, query, page, perPage)
}

// Get returns the cached page, if present.
func (c *PageCache) Get(mode, query string, page, perPage int) ([]Hit, bool) {
	if c == nil {
		return nil, false
	}
	return c.lru.Get(pageKey(mode, query, page, perPage))
}

// Put stores a fetched page.
func (c *PageCache) Put(mode, query string, page, perPage int, hits []Hit) {
	if c == nil {
		return
	}
	c.lru.Add(pageKey(mode, query, page, perPage), hits)
}

// Purge drops every cached page.
func (c *PageCache) Purge() {
	if c == nil {
		return
	}
	c.lru.Purge()
}

// Len returns the number of cached pages.
func (c *PageCache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}
