package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCachePutGet(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "key", []byte("value"), time.Now().Add(time.Minute)))

	got, ok, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("value"), got)
}

func TestMemoryCacheMiss(t *testing.T) {
	cache := NewMemoryCache()

	_, ok, err := cache.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheExpiry(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "key", []byte("value"), time.Now().Add(20*time.Millisecond)))
	time.Sleep(30 * time.Millisecond)

	_, ok, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheRejectsExpiredValue(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "key", []byte("value"), time.Now().Add(-time.Second)))

	_, ok, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, ok)
}

func newTestRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCache(client), mr
}

func TestRedisCachePutGet(t *testing.T) {
	cache, _ := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "hash-1", []byte("extracted"), time.Now().Add(time.Hour)))

	got, ok, err := cache.Get(ctx, "hash-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("extracted"), got)
}

func TestRedisCacheMiss(t *testing.T) {
	cache, _ := newTestRedisCache(t)

	_, ok, err := cache.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCacheExpiry(t *testing.T) {
	cache, mr := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "hash-1", []byte("extracted"), time.Now().Add(time.Minute)))
	mr.FastForward(2 * time.Minute)

	_, ok, err := cache.Get(ctx, "hash-1")
	require.NoError(t, err)
	assert.False(t, ok)
}
