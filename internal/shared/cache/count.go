package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/lighter/common/internal/shared/metrics"
)

// DefaultCountTTL is used when a CountCache is created with a zero TTL.
const DefaultCountTTL = 30 * time.Second

const (
	keyPrefix     = "lighter:count:"
	searchSegment = ":q:"
	scanBatch     = 100
)

// CountLoader computes a total from the source of truth.
type CountLoader func(ctx context.Context) (int64, error)

// CountCache caches listing totals in Redis. Redis failures never fail a
// listing: the breaker opens after repeated errors and the loader is called
// directly until Redis recovers. A nil *CountCache always calls the loader.
type CountCache struct {
	client  redis.UniversalClient
	ttl     time.Duration
	breaker *gobreaker.CircuitBreaker[int64]
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewCountCache creates a count cache over client. A nil client yields a nil
// cache.
func NewCountCache(client redis.UniversalClient, ttl time.Duration, m *metrics.Metrics, log *zap.Logger) *CountCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultCountTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("count_cache")

	breaker := gobreaker.NewCircuitBreaker[int64](gobreaker.Settings{
		Name:        "redis-count",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &CountCache{
		client:  client,
		ttl:     ttl,
		breaker: breaker,
		metrics: m,
		log:     log,
	}
}

// Key builds the cache key for a listing of entity filtered by search.
func Key(entity, search string) string {
	if search == "" {
		return keyPrefix + entity
	}
	sum := sha1.Sum([]byte(strings.ToLower(search)))
	return keyPrefix + entity + searchSegment + hex.EncodeToString(sum[:])
}

// Count returns the cached total under key, calling load on a miss or when
// Redis is unavailable.
func (c *CountCache) Count(ctx context.Context, key string, load CountLoader) (int64, error) {
	if c == nil {
		return load(ctx)
	}
	cacheName := cacheLabel(key)

	total, err := c.breaker.Execute(func() (int64, error) {
		return c.client.Get(ctx, key).Int64()
	})
	switch {
	case err == nil:
		c.metrics.RecordCacheHit(cacheName)
		return total, nil
	case errors.Is(err, redis.Nil):
		c.metrics.RecordCacheMiss(cacheName)
	default:
		c.metrics.RecordCacheError(cacheName)
		c.log.Debug("count cache unavailable", zap.String("key", key), zap.Error(err))
		return load(ctx)
	}

	total, err = load(ctx)
	if err != nil {
		return 0, err
	}

	if _, err := c.breaker.Execute(func() (int64, error) {
		return 0, c.client.Set(ctx, key, total, c.ttl).Err()
	}); err != nil {
		c.metrics.RecordCacheError(cacheName)
		c.log.Debug("count cache write failed", zap.String("key", key), zap.Error(err))
	}
	return total, nil
}

// Invalidate drops the given keys. Failures are logged and swallowed since
// entries expire on their own.
func (c *CountCache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if _, err := c.breaker.Execute(func() (int64, error) {
		return c.client.Del(ctx, keys...).Result()
	}); err != nil {
		c.log.Debug("count cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// InvalidateEntity drops every total cached for entity: the unfiltered count
// and each search-scoped count.
func (c *CountCache) InvalidateEntity(ctx context.Context, entity string) {
	if c == nil {
		return
	}
	c.Invalidate(ctx, Key(entity, ""))

	pattern := Key(entity, "") + searchSegment + "*"
	if _, err := c.breaker.Execute(func() (int64, error) {
		var (
			cursor  uint64
			deleted int64
		)
		for {
			keys, next, err := c.client.Scan(ctx, cursor, pattern, scanBatch).Result()
			if err != nil {
				return deleted, fmt.Errorf("scan keys: %w", err)
			}
			if len(keys) > 0 {
				n, err := c.client.Del(ctx, keys...).Result()
				if err != nil {
					return deleted, fmt.Errorf("delete keys: %w", err)
				}
				deleted += n
			}
			cursor = next
			if cursor == 0 {
				return deleted, nil
			}
		}
	}); err != nil {
		c.log.Debug("count cache invalidation failed", zap.String("entity", entity), zap.Error(err))
	}
}

// State reports the breaker state.
func (c *CountCache) State() gobreaker.State {
	if c == nil {
		return gobreaker.StateClosed
	}
	return c.breaker.State()
}

func cacheLabel(key string) string {
	name := strings.TrimPrefix(key, keyPrefix)
	if i := strings.IndexByte(name, ':'); i >= 0 {
		name = name[:i]
	}
	return name + "_count"
}
