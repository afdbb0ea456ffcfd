package redis

import (
	"context"
	"testing"
	"time"

	"github.com/JMURv/session-guard/internal/cache"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	cli := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = cli.Close() })
	return NewFromClient(cli), mr
}

type item struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestCache_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	tests := []struct {
		name     string
		setup    func()
		key      string
		expected item
		err      error
	}{
		{
			name:  "Miss",
			setup: func() {},
			key:   "missing",
			err:   cache.ErrNotFoundInCache,
		},
		{
			name: "Hit",
			setup: func() {
				c.Set(ctx, time.Minute, "hit", item{Name: "a", Count: 2})
			},
			key:      "hit",
			expected: item{Name: "a", Count: 2},
		},
		{
			name: "Deleted",
			setup: func() {
				c.Set(ctx, time.Minute, "gone", item{Name: "b"})
				c.Delete(ctx, "gone")
			},
			key: "gone",
			err: cache.ErrNotFoundInCache,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			var got item
			err := c.GetToStruct(ctx, tt.key, &got)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	c.Set(ctx, time.Second, "ttl", item{})
	mr.FastForward(time.Second * 2)
	assert.ErrorIs(t, c.GetToStruct(ctx, "ttl", &item{}), cache.ErrNotFoundInCache)
}

func TestCache_InvalidateKeysByPattern(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	c.Set(ctx, time.Minute, "sessions:1", item{})
	c.Set(ctx, time.Minute, "sessions:2", item{})
	c.Set(ctx, time.Minute, "other", item{})

	c.InvalidateKeysByPattern(ctx, "sessions:*")
	assert.False(t, mr.Exists("sessions:1"))
	assert.False(t, mr.Exists("sessions:2"))
	assert.True(t, mr.Exists("other"))
}

func TestCache_Allow(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	for i := 0; i < 3; i++ {
		ok, err := c.Allow(ctx, "rl:ip", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := c.Allow(ctx, "rl:ip", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	mr.FastForward(time.Minute + time.Second)
	ok, err = c.Allow(ctx, "rl:ip", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	mr.Close()
	_, err = c.Allow(ctx, "rl:ip", 3, time.Minute)
	assert.Error(t, err)
}
