package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/database/databasetest"
	"storefront/internal/jobs"
	"storefront/internal/logging"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPurger struct{}

func (failingPurger) PurgeExpired(context.Context) (int64, error) {
	return 0, errors.New("database is locked")
}

func TestPurgeRevokedTokens(t *testing.T) {
	ctx := context.Background()
	db := databasetest.Open(t)
	denylist := repositories.NewGORMTokenDenylist(db)

	// Revoke skips tokens that are already expired, so seed the stale row directly.
	require.NoError(t, db.Create(&models.RevokedToken{JTI: "expired", ExpiresAt: time.Now().Add(-time.Minute)}).Error)
	require.NoError(t, denylist.Revoke(ctx, "live", time.Now().Add(time.Hour)))

	assert.Equal(t, int64(1), jobs.PurgeRevokedTokens(ctx, denylist, logging.Discard()))

	revoked, err := denylist.IsRevoked(ctx, "live")
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.Equal(t, int64(0), jobs.PurgeRevokedTokens(ctx, failingPurger{}, logging.Discard()))
}

func TestScheduler_AddRevocationPurge(t *testing.T) {
	s := jobs.NewScheduler(logging.Discard())

	assert.NoError(t, s.AddRevocationPurge(jobs.DefaultPurgeSchedule, failingPurger{}))
	assert.Error(t, s.AddRevocationPurge("every now and then", failingPurger{}))

	s.Start()
	s.Stop()
}
