package dataapi

import (
	"context"
	"time"

	"github.com/bluele/gcache"

	"github.com/bayanlab/bayanlab-commerce/api/metrics"
)

const defaultCacheSize = 128

type cacheKey struct {
	resource string
	region   string
}

// cachingSource keeps successful Stats, Coverage and Preview answers for a fixed
// TTL. Errors are never cached.
type cachingSource struct {
	Source
	cache gcache.Cache
}

// NewCachingSource wraps src with a TTL cache. A non-positive ttl disables caching.
func NewCachingSource(src Source, ttl time.Duration) Source {
	if ttl <= 0 {
		return src
	}
	return &cachingSource{
		Source: src,
		cache:  gcache.New(defaultCacheSize).LRU().Expiration(ttl).Build(),
	}
}

func (c *cachingSource) Stats(ctx context.Context) (Stats, error) {
	v, err := c.lookup(ctx, cacheKey{resource: "stats"}, func(ctx context.Context) (interface{}, error) {
		return c.Source.Stats(ctx)
	})
	if err != nil {
		return Stats{}, err
	}
	return v.(Stats), nil
}

func (c *cachingSource) Coverage(ctx context.Context) (Coverage, error) {
	v, err := c.lookup(ctx, cacheKey{resource: "coverage"}, func(ctx context.Context) (interface{}, error) {
		return c.Source.Coverage(ctx)
	})
	if err != nil {
		return Coverage{}, err
	}
	return v.(Coverage), nil
}

func (c *cachingSource) Preview(ctx context.Context, region string) (Preview, error) {
	v, err := c.lookup(ctx, cacheKey{resource: "preview", region: region}, func(ctx context.Context) (interface{}, error) {
		return c.Source.Preview(ctx, region)
	})
	if err != nil {
		return Preview{}, err
	}
	return v.(Preview), nil
}

func (c *cachingSource) lookup(ctx context.Context, key cacheKey, fetch func(context.Context) (interface{}, error)) (interface{}, error) {
	v, err := c.cache.Get(key)
	metrics.DataAPICacheTotal.WithLabelValues(key.resource, hitOrMiss(err)).Inc()
	if err == nil {
		return v, nil
	}

	v, err = fetch(ctx)
	if err != nil {
		return nil, err
	}
	_ = c.cache.Set(key, v)
	return v, nil
}

func hitOrMiss(err error) string {
	if err == nil {
		return "hit"
	}
	return "miss"
}
