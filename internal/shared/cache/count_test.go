package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lighter/common/internal/shared/cache/cachetest"
	"github.com/lighter/common/internal/shared/config"
	"github.com/lighter/common/internal/shared/metrics"
)

// unreachableClient points at a port nothing listens on.
func unreachableClient(t *testing.T) redis.UniversalClient {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func constLoader(n int64, calls *int) CountLoader {
	return func(context.Context) (int64, error) {
		*calls++
		return n, nil
	}
}

func TestCountCache_Nil(t *testing.T) {
	var c *CountCache
	calls := 0

	total, err := c.Count(context.Background(), Key("user", ""), constLoader(25, &calls))
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Equal(t, 1, calls)
	assert.Equal(t, gobreaker.StateClosed, c.State())
	assert.NotPanics(t, func() { c.Invalidate(context.Background(), "k") })
}

func TestNewCountCache_NilClient(t *testing.T) {
	assert.Nil(t, NewCountCache(nil, time.Second, nil, nil))
}

func TestCountCache_FallsBackWhenRedisDown(t *testing.T) {
	m := metrics.New("test", prometheus.NewRegistry())
	c := NewCountCache(unreachableClient(t), time.Second, m, zap.NewNop())
	calls := 0

	total, err := c.Count(context.Background(), Key("user", ""), constLoader(7, &calls))
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Equal(t, 1, calls)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheErrorsTotal.WithLabelValues("user_count")))
}

func TestCountCache_BreakerOpens(t *testing.T) {
	c := NewCountCache(unreachableClient(t), time.Second, nil, nil)
	calls := 0

	for i := 0; i < 6; i++ {
		total, err := c.Count(context.Background(), Key("user", "ann"), constLoader(3, &calls))
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
	}
	assert.Equal(t, 6, calls)
	assert.Equal(t, gobreaker.StateOpen, c.State())
}

func TestCountCache_LoaderError(t *testing.T) {
	c := NewCountCache(unreachableClient(t), time.Second, nil, nil)
	boom := errors.New("boom")

	_, err := c.Count(context.Background(), Key("user", ""), func(context.Context) (int64, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestCountCache_HitAndMiss(t *testing.T) {
	m := metrics.New("test", prometheus.NewRegistry())
	client := cachetest.NewClient()
	c := NewCountCache(client, time.Second, m, nil)
	key := Key("user", "ada")
	calls := 0

	total, err := c.Count(context.Background(), key, constLoader(4, &calls))
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.True(t, client.Has(key))

	total, err = c.Count(context.Background(), key, constLoader(99, &calls))
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Equal(t, 1, calls)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheMissesTotal.WithLabelValues("user_count")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheHitsTotal.WithLabelValues("user_count")))
}

func TestCountCache_InvalidateEntity(t *testing.T) {
	t.Run("drops unfiltered and search totals", func(t *testing.T) {
		client := cachetest.NewClient()
		c := NewCountCache(client, time.Second, nil, nil)
		client.Seed(Key("user", ""), 25)
		client.Seed(Key("user", "ada"), 0)
		client.Seed(Key("user", "grace"), 3)
		client.Seed(Key("users", ""), 8)
		client.Seed(Key("users", "ada"), 1)

		c.InvalidateEntity(context.Background(), "user")

		assert.False(t, client.Has(Key("user", "")))
		assert.False(t, client.Has(Key("user", "ada")))
		assert.False(t, client.Has(Key("user", "grace")))
		assert.True(t, client.Has(Key("users", "")))
		assert.True(t, client.Has(Key("users", "ada")))
	})

	t.Run("walks every scan batch", func(t *testing.T) {
		client := cachetest.NewClient()
		c := NewCountCache(client, time.Second, nil, nil)
		for i := 0; i < 3*scanBatch+7; i++ {
			client.Seed(Key("user", fmt.Sprintf("term-%d", i)), i)
		}

		c.InvalidateEntity(context.Background(), "user")
		assert.Zero(t, client.Len())
	})

	t.Run("next count reloads", func(t *testing.T) {
		client := cachetest.NewClient()
		c := NewCountCache(client, time.Second, nil, nil)
		key := Key("user", "ada")
		calls := 0

		total, err := c.Count(context.Background(), key, constLoader(0, &calls))
		require.NoError(t, err)
		assert.Zero(t, total)

		c.InvalidateEntity(context.Background(), "user")

		total, err = c.Count(context.Background(), key, constLoader(1, &calls))
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, 2, calls)
	})

	t.Run("nil cache", func(t *testing.T) {
		var c *CountCache
		assert.NotPanics(t, func() { c.InvalidateEntity(context.Background(), "user") })
	})
}

func TestKey(t *testing.T) {
	assert.Equal(t, "lighter:count:user", Key("user", ""))
	assert.Equal(t, Key("user", "Ann"), Key("user", "ann"))
	assert.NotEqual(t, Key("user", "ann"), Key("user", "bob"))
	assert.Contains(t, Key("user", "ann"), "lighter:count:user:q:")
}

func TestCacheLabel(t *testing.T) {
	assert.Equal(t, "user_count", cacheLabel(Key("user", "")))
	assert.Equal(t, "user_count", cacheLabel(Key("user", "ann")))
}

func TestNewRedisClient_Disabled(t *testing.T) {
	client, err := NewRedisClient(&config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)
	assert.NoError(t, Close(nil))
}
