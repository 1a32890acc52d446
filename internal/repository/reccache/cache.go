// Package reccache caches recommendation responses in a key-value store.
package reccache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/zoto/internal/db"
	"github.com/kailas-cloud/zoto/internal/domain/search/request"
	"github.com/kailas-cloud/zoto/internal/domain/search/result"
)

const cacheKeyPrefix = "rec_cache:"

// store is the consumer interface for the recommendation cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Recommender is the decorated recommendation client.
type Recommender interface {
	Fetch(ctx context.Context, req request.Request) ([]result.Restaurant, error)
}

// CachedRecommender serves repeated identical requests from the store.
// Only non-empty successful responses are cached. Concurrent misses for the
// same request share one upstream call.
type CachedRecommender struct {
	inner      Recommender
	group      singleflight.Group
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner Recommender,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedRecommender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedRecommender{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Fetch returns cached restaurants for an identical request or calls the inner client.
// Errors from the inner client are returned unchanged.
func (c *CachedRecommender) Fetch(ctx context.Context, req request.Request) ([]result.Restaurant, error) {
	key, err := c.cacheKey(req)
	if err != nil {
		c.logger.Warn("Failed to derive recommendation cache key", zap.Error(err))
		return c.inner.Fetch(ctx, req)
	}

	if rs, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return rs, nil
	}
	c.incCache("miss")

	v, err, shared := c.group.Do(key, func() (any, error) {
		rs, err := c.inner.Fetch(ctx, req)
		if err != nil {
			return nil, err
		}
		if len(rs) > 0 {
			c.putToCache(ctx, key, rs)
		}
		return rs, nil
	})
	if err != nil {
		return nil, err //nolint:wrapcheck // inner errors pass through unchanged
	}
	rs, _ := v.([]result.Restaurant)
	if shared {
		rs = result.CloneAll(rs)
	}
	return rs, nil
}

func (c *CachedRecommender) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// cacheKey hashes the wire payload, so requests that serialize identically share an entry.
func (c *CachedRecommender) cacheKey(req request.Request) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	h := sha256.Sum256(body)
	return cacheKeyPrefix + hex.EncodeToString(h[:]), nil
}

func (c *CachedRecommender) getFromCache(ctx context.Context, key string) ([]result.Restaurant, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached recommendations", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	var resp result.Response
	if err := json.Unmarshal(data, &resp); err != nil {
		c.logger.Warn("Failed to parse cached recommendations", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if len(resp.Restaurants) == 0 {
		return nil, false
	}
	return resp.Restaurants, true
}

func (c *CachedRecommender) putToCache(ctx context.Context, key string, rs []result.Restaurant) {
	data, err := json.Marshal(result.Response{Restaurants: rs})
	if err != nil {
		c.logger.Warn("Failed to encode recommendations for cache", zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache recommendations", zap.String("key", key), zap.Error(err))
	}
}
