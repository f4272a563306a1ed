// Package auth holds the per-request session produced by the authenticator
// and the authorization decisions made over it.
package auth

import (
	"errors"
	"time"

	"storefront/pkg/token"
)

// Roles known to the store.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("not permitted")
)

// Session is the outcome of authenticating one request. The zero value is an
// unverified session.
type Session struct {
	verified  bool
	userID    string
	role      string
	tokenID   string
	expiresAt time.Time
}

// Unverified returns a session that carries no identity.
func Unverified() Session {
	return Session{}
}

// Verified builds a session from claims that have already passed token verification.
func Verified(claims *token.Claims) Session {
	if claims == nil || claims.UserID == "" {
		return Session{}
	}
	s := Session{
		verified: true,
		userID:   claims.UserID,
		role:     claims.Role,
		tokenID:  claims.ID,
	}
	if claims.ExpiresAt != nil {
		s.expiresAt = claims.ExpiresAt.Time
	}
	return s
}

func (s Session) IsVerified() bool     { return s.verified }
func (s Session) UserID() string       { return s.userID }
func (s Session) Role() string         { return s.role }
func (s Session) TokenID() string      { return s.tokenID }
func (s Session) ExpiresAt() time.Time { return s.expiresAt }
