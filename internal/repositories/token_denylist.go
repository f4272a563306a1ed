package repositories

import (
	"context"
	"time"
)

// TokenDenylist records session tokens revoked before their expiry.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
