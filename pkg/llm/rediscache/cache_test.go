package rediscache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/resumebuilder/pkg/llm"
)

func newCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return New(rdb), mr
}

func TestCacheMissAndHit(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "llm:abc")
	assert.ErrorIs(t, err, llm.ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "llm:abc", `{"name":"Jane"}`, time.Hour))
	v, err := c.Get(ctx, "llm:abc")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Jane"}`, v)
}

func TestCacheTTL(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "llm:ttl", "x", time.Minute))
	assert.Equal(t, time.Minute, mr.TTL("llm:ttl"))

	mr.FastForward(2 * time.Minute)
	_, err := c.Get(ctx, "llm:ttl")
	assert.ErrorIs(t, err, llm.ErrCacheMiss)
}

func TestCacheServerDown(t *testing.T) {
	c, mr := newCache(t)
	mr.Close()

	_, err := c.Get(context.Background(), "llm:abc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, llm.ErrCacheMiss)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	rdb, err := Connect(ctx, "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	require.NoError(t, rdb.Close())

	_, err = Connect(ctx, "not a url")
	assert.Error(t, err)

	addr := mr.Addr()
	mr.Close()
	_, err = Connect(ctx, "redis://"+addr)
	assert.Error(t, err)
}
