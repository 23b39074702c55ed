package org

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisCache is a Cache backed by a shared Redis instance, for deployments
// running multiple application instances behind one organization store.
type redisCache struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisCache creates a Redis-backed Cache. The client's lifecycle belongs
// to the caller; Close on the cache does not close the client.
func NewRedisCache(client redis.UniversalClient, keyPrefix string) Cache {
	if keyPrefix == "" {
		keyPrefix = "org:"
	}
	return &redisCache{client: client, keyPrefix: keyPrefix}
}

func (c *redisCache) Get(ctx context.Context, key string) (*Organization, bool) {
	data, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}

	var o Organization
	if err := json.Unmarshal(data, &o); err != nil {
		// Corrupt entry, drop it so the next request reloads from the provider.
		c.client.Del(ctx, c.keyPrefix+key)
		return nil, false
	}
	return &o, true
}

func (c *redisCache) Set(ctx context.Context, key string, o *Organization, ttl time.Duration) {
	if o == nil || ttl <= 0 {
		return
	}

	data, err := json.Marshal(o)
	if err != nil {
		return
	}
	c.client.Set(ctx, c.keyPrefix+key, data, ttl)
}

func (c *redisCache) Delete(ctx context.Context, key string) {
	c.client.Del(ctx, c.keyPrefix+key)
}

func (c *redisCache) Close() error {
	return nil
}
