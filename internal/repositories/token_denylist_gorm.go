package repositories

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMTokenDenylist keeps revoked token IDs in the revoked_tokens table.
type GORMTokenDenylist struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGORMTokenDenylist creates a new GORMTokenDenylist.
func NewGORMTokenDenylist(db *gorm.DB) *GORMTokenDenylist {
	return &GORMTokenDenylist{db: db, now: time.Now}
}

// Revoke stores tokenID until expiresAt. Revoking twice is a no-op.
func (r *GORMTokenDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" || !expiresAt.After(r.now()) {
		return nil
	}
	row := models.RevokedToken{JTI: tokenID, ExpiresAt: expiresAt}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to revoke token %s: %w", tokenID, err)
	}
	return nil
}

// IsRevoked reports whether tokenID is revoked and not yet expired.
func (r *GORMTokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RevokedToken{}).
		Where("jti = ? AND expires_at > ?", tokenID, r.now()).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check token %s: %w", tokenID, err)
	}
	return count > 0, nil
}

// PurgeExpired deletes rows whose token would have expired anyway.
func (r *GORMTokenDenylist) PurgeExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at <= ?", r.now()).Delete(&models.RevokedToken{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to purge revoked tokens: %w", res.Error)
	}
	return res.RowsAffected, nil
}
