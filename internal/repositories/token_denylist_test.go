package repositories_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/database/databasetest"
	"storefront/internal/repositories"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGORMTokenDenylist(t *testing.T) {
	ctx := context.Background()
	denylist := repositories.NewGORMTokenDenylist(databasetest.Open(t))

	revoked, err := denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, denylist.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))
	require.NoError(t, denylist.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)), "revoking twice is a no-op")

	revoked, err = denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Already expired tokens are not worth storing.
	require.NoError(t, denylist.Revoke(ctx, "jti-old", time.Now().Add(-time.Minute)))
	revoked, err = denylist.IsRevoked(ctx, "jti-old")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestGORMTokenDenylist_PurgeExpired(t *testing.T) {
	ctx := context.Background()
	db := databasetest.Open(t)
	denylist := repositories.NewGORMTokenDenylist(db)

	require.NoError(t, denylist.Revoke(ctx, "short", time.Now().Add(50*time.Millisecond)))
	require.NoError(t, denylist.Revoke(ctx, "long", time.Now().Add(time.Hour)))

	time.Sleep(100 * time.Millisecond)

	purged, err := denylist.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	revoked, err := denylist.IsRevoked(ctx, "long")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRedisTokenDenylist(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	denylist := repositories.NewRedisTokenDenylist(rdb)

	require.NoError(t, denylist.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))
	revoked, err := denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl := mr.TTL("auth:revoked:jti-1")
	assert.Greater(t, ttl, 59*time.Minute)

	mr.FastForward(2 * time.Hour)
	revoked, err = denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	revoked, err = denylist.IsRevoked(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, revoked)
}
