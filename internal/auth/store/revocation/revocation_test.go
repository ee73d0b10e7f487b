package revocation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thientu9562/identity-management/pkg/platform/sentinel"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestInMemoryTRL(t *testing.T) {
	ctx := context.Background()
	clock := &manualClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	trl := NewInMemoryTRL(WithMemoryClock(clock.Now))

	t.Run("unknown jti is not revoked", func(t *testing.T) {
		revoked, err := trl.IsRevoked(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("revoked until ttl elapses", func(t *testing.T) {
		require.NoError(t, trl.RevokeToken(ctx, "jti-1", time.Minute))

		revoked, err := trl.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)

		clock.Advance(2 * time.Minute)
		revoked, err = trl.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("non-positive ttl is rejected", func(t *testing.T) {
		err := trl.RevokeToken(ctx, "jti-2", 0)
		assert.ErrorIs(t, err, sentinel.ErrInvalidState)
	})

	t.Run("empty jti is ignored", func(t *testing.T) {
		require.NoError(t, trl.RevokeToken(ctx, "", time.Minute))
		revoked, err := trl.IsRevoked(ctx, "")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}

func TestRedisTRL(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	trl := NewRedisTRL(client)

	require.NoError(t, trl.RevokeToken(ctx, "jti-1", time.Minute))
	assert.True(t, mr.Exists(revokedTokenKeyPrefix+"jti-1"))

	revoked, err := trl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = trl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	t.Run("redis outage surfaces as an error", func(t *testing.T) {
		mr.Close()
		_, err := trl.IsRevoked(ctx, "jti-1")
		assert.Error(t, err)
	})
}
