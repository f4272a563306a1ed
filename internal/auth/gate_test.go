package auth_test

import (
	"testing"
	"time"

	"storefront/internal/auth"
	"storefront/pkg/token"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func verifiedSession(userID, role string) auth.Session {
	return auth.Verified(&token.Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
}

func TestVerified_CopiesClaims(t *testing.T) {
	s := verifiedSession("user-1", auth.RoleAdmin)
	assert.True(t, s.IsVerified())
	assert.Equal(t, "user-1", s.UserID())
	assert.Equal(t, auth.RoleAdmin, s.Role())
	assert.Equal(t, "jti-1", s.TokenID())
	assert.False(t, s.ExpiresAt().IsZero())
}

func TestVerified_WithoutIdentityIsUnverified(t *testing.T) {
	assert.False(t, auth.Verified(nil).IsVerified())
	assert.False(t, auth.Verified(&token.Claims{}).IsVerified())
}

func TestRequireVerified(t *testing.T) {
	assert.ErrorIs(t, auth.RequireVerified(auth.Unverified()), auth.ErrUnauthenticated)
	assert.ErrorIs(t, auth.RequireVerified(auth.Session{}), auth.ErrUnauthenticated)
	assert.NoError(t, auth.RequireVerified(verifiedSession("user-1", auth.RoleCustomer)))
}

func TestRequireNotSelf(t *testing.T) {
	s := verifiedSession("user-1", auth.RoleAdmin)

	assert.ErrorIs(t, auth.RequireNotSelf(s, "user-1"), auth.ErrForbidden)
	for _, other := range []string{"user-2", "b1b5d7a2-8f3e-4c1d-9a51-0c5b6e0d1f22", "USER-1"} {
		assert.NoError(t, auth.RequireNotSelf(s, other), other)
	}
	assert.ErrorIs(t, auth.RequireNotSelf(auth.Unverified(), "user-2"), auth.ErrUnauthenticated)
}

func TestRequireRole(t *testing.T) {
	admin := verifiedSession("user-1", auth.RoleAdmin)
	customer := verifiedSession("user-2", auth.RoleCustomer)

	assert.NoError(t, auth.RequireRole(admin, auth.RoleAdmin))
	assert.NoError(t, auth.RequireRole(customer, auth.RoleAdmin, auth.RoleCustomer))
	assert.ErrorIs(t, auth.RequireRole(customer, auth.RoleAdmin), auth.ErrForbidden)
	assert.ErrorIs(t, auth.RequireRole(admin), auth.ErrForbidden)
	assert.ErrorIs(t, auth.RequireRole(auth.Unverified(), auth.RoleAdmin), auth.ErrUnauthenticated)
}
