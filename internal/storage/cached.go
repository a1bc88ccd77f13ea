package storage

import (
	"context"
	"ratingd/internal/providers"
	"strconv"
)

// CachedStore serves reads from the in-process cache and writes through to
// the backing store. Only present keys are cached; a miss always goes to the
// backend so an absent key is never served stale.
type CachedStore struct {
	inner StoreInterface
	cache providers.CacheProviderInterface
}

func NewCachedStore(inner StoreInterface, cache providers.CacheProviderInterface) *CachedStore {
	return &CachedStore{inner: inner, cache: cache}
}

func (c *CachedStore) Get(ctx context.Context, key string) (string, bool, error) {
	if v, ok := c.cache.Get(key); ok {
		return string(v), true, nil
	}
	v, ok, err := c.inner.Get(ctx, key)
	if err != nil || !ok {
		return v, ok, err
	}
	c.cache.Set(key, []byte(v))
	return v, true, nil
}

func (c *CachedStore) Set(ctx context.Context, key, value string) error {
	if err := c.inner.Set(ctx, key, value); err != nil {
		c.cache.Del(key)
		return err
	}
	c.cache.Set(key, []byte(value))
	return nil
}

func (c *CachedStore) Remove(ctx context.Context, key string) error {
	c.cache.Del(key)
	return c.inner.Remove(ctx, key)
}

func (c *CachedStore) Incr(ctx context.Context, key string, delta int64) (int64, error) {
	if inc, ok := c.inner.(Incrementer); ok {
		n, err := inc.Incr(ctx, key, delta)
		if err != nil {
			c.cache.Del(key)
			return 0, err
		}
		c.cache.Set(key, []byte(strconv.FormatInt(n, 10)))
		return n, nil
	}

	return incrBySetGet(ctx, c, key, delta)
}

func (c *CachedStore) Close() error {
	return c.inner.Close()
}
