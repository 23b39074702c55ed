package org

import (
	"context"
	"sync"
	"time"
)

// Cache stores resolved organizations keyed by the identifier they were
// resolved from. Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves an organization from cache by key.
	Get(ctx context.Context, key string) (*Organization, bool)

	// Set stores an organization in cache with the given TTL.
	Set(ctx context.Context, key string, o *Organization, ttl time.Duration)

	// Delete removes an organization from cache.
	Delete(ctx context.Context, key string)

	// Close releases any resources held by the cache.
	Close() error
}

// DefaultCacheSize is the default maximum number of cached organizations.
const DefaultCacheSize = 1000

type cacheItem struct {
	org       *Organization
	expiresAt time.Time
}

type memoryCache struct {
	mu      sync.RWMutex
	items   map[string]cacheItem
	maxSize int
	stop    chan struct{}
	done    chan struct{}
	closed  bool
}

// NewMemoryCache creates an in-process cache with automatic cleanup of
// expired entries.
func NewMemoryCache() Cache {
	return NewMemoryCacheWithSize(DefaultCacheSize)
}

// NewMemoryCacheWithSize creates an in-process cache bounded to maxSize
// entries. When full, expired entries are evicted first, then an arbitrary
// entry.
func NewMemoryCacheWithSize(maxSize int) Cache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}

	c := &memoryCache{
		items:   make(map[string]cacheItem),
		maxSize: maxSize,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

func (c *memoryCache) Get(ctx context.Context, key string) (*Organization, bool) {
	c.mu.RLock()
	item, exists := c.items[key]
	c.mu.RUnlock()

	if !exists {
		return nil, false
	}
	if time.Now().After(item.expiresAt) {
		c.Delete(ctx, key)
		return nil, false
	}
	return item.org, true
}

func (c *memoryCache) Set(ctx context.Context, key string, o *Organization, ttl time.Duration) {
	if o == nil || ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxSize {
		c.evictLocked()
	}

	c.items[key] = cacheItem{org: o, expiresAt: time.Now().Add(ttl)}
}

func (c *memoryCache) Delete(ctx context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *memoryCache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	close(c.stop)
	<-c.done
	return nil
}

// evictLocked frees one slot. Expired entries go first; when none are
// expired an arbitrary entry is dropped, which is acceptable for a cache
// whose entries are cheap to reload.
func (c *memoryCache) evictLocked() {
	now := time.Now()
	for key, item := range c.items {
		if now.After(item.expiresAt) {
			delete(c.items, key)
			return
		}
	}
	for key := range c.items {
		delete(c.items, key)
		return
	}
}

func (c *memoryCache) cleanupLoop() {
	defer close(c.done)

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for key, item := range c.items {
				if now.After(item.expiresAt) {
					delete(c.items, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
