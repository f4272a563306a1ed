package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const revokedKeyPrefix = "auth:revoked:"

// RedisTokenDenylist keeps revoked token IDs as Redis keys that expire with the token.
type RedisTokenDenylist struct {
	rdb *redis.Client
}

// NewRedisTokenDenylist creates a new RedisTokenDenylist.
func NewRedisTokenDenylist(rdb *redis.Client) *RedisTokenDenylist {
	return &RedisTokenDenylist{rdb: rdb}
}

// Revoke stores tokenID for the remaining lifetime of the token.
func (r *RedisTokenDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	if err := r.rdb.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token %s: %w", tokenID, err)
	}
	return nil
}

// IsRevoked reports whether tokenID is still on the list.
func (r *RedisTokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.rdb.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token %s: %w", tokenID, err)
	}
	return n > 0, nil
}
