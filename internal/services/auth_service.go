package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/auth"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/password"
	"storefront/pkg/token"

	"github.com/sirupsen/logrus"
)

// RegisterInput is the shape accepted when adding a user.
type RegisterInput struct {
	Role            string `json:"role" form:"role" validate:"required,oneof=admin customer"`
	Name            string `json:"name" form:"name" validate:"required,max=255"`
	Username        string `json:"username" form:"username" validate:"required,min=8,max=100"`
	Password        string `json:"password" form:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm-pass" form:"confirm-pass" validate:"required,eqfield=Password"`
}

// LoginInput is the shape accepted when logging in.
type LoginInput struct {
	Username string `json:"username" form:"username" validate:"required,min=8"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token  string
	Claims *token.Claims
	User   *models.User
}

// AuthService handles registration, login and session tokens.
type AuthService struct {
	userRepo repositories.UserRepository
	hasher   *password.Hasher
	codec    *token.Codec
	denylist repositories.TokenDenylist // nil when logout is client-side only
	events   EventPublisher
	log      logrus.FieldLogger
}

// NewAuthService creates a new AuthService. denylist and events may be nil.
func NewAuthService(
	userRepo repositories.UserRepository,
	hasher *password.Hasher,
	codec *token.Codec,
	denylist repositories.TokenDenylist,
	events EventPublisher,
	log logrus.FieldLogger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		codec:    codec,
		denylist: denylist,
		events:   events,
		log:      log.WithField("component", "auth-service"),
	}
}

// TokenTTL is the lifetime of issued session tokens.
func (s *AuthService) TokenTTL() time.Duration {
	return s.codec.TTL()
}

// Register validates the input, checks the username is free, hashes the
// password and stores an ACTIVE user.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Name = strings.TrimSpace(input.Name)
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	// max=72 counts runes; bcrypt's limit is in bytes.
	if len(input.Password) > password.MaxLength {
		return nil, newValidationError("password", fmt.Sprintf("password must be at most %d bytes", password.MaxLength))
	}

	// The unique index is authoritative; this lookup only avoids a wasted hash.
	if _, err := s.userRepo.GetByUsername(input.Username); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateUsername, input.Username)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Role:          input.Role,
		Name:          input.Name,
		Username:      input.Username,
		PasswordHash:  hash,
		AccountStatus: models.StatusActive,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateUsername, input.Username)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("user registered")
	publishAccountEvent(s.events, s.log, AccountEvent{
		Type:     EventUserRegistered,
		UserID:   user.ID,
		Username: user.Username,
		Status:   string(user.AccountStatus),
	})
	return user, nil
}

// Login checks the account status before the password and issues a session
// token on success.
func (s *AuthService) Login(input LoginInput) (*LoginResult, error) {
	input.Username = strings.TrimSpace(input.Username)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(input.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, input.Username)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.AccountStatus == models.StatusInactive {
		return nil, ErrInactiveAccount
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, ErrBadCredentials
	}

	raw, claims, err := s.codec.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.WithField("user_id", user.ID).Info("user logged in")
	return &LoginResult{Token: raw, Claims: claims, User: user}, nil
}

// VerifyToken verifies the token and rejects it when it has been revoked or
// its user is no longer an ACTIVE account. The returned role is the user's
// current one, not the role at issue time.
func (s *AuthService) VerifyToken(ctx context.Context, raw string) (*token.Claims, error) {
	claims, err := s.codec.Verify(raw)
	if err != nil {
		return nil, err
	}
	if s.denylist != nil {
		revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check revocation: %w", err)
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, claims.UserID)
		}
		return nil, fmt.Errorf("failed to look up token owner: %w", err)
	}
	if user.AccountStatus != models.StatusActive {
		return nil, ErrInactiveAccount
	}
	claims.Role = user.Role
	return claims, nil
}

// EnsureAdmin registers an ADMIN account unless the username is already
// taken. It seeds the first administrator, since only admins may add admins.
func (s *AuthService) EnsureAdmin(username, pass string) error {
	_, err := s.Register(RegisterInput{
		Role:            auth.RoleAdmin,
		Name:            "Administrator",
		Username:        username,
		Password:        pass,
		ConfirmPassword: pass,
	})
	if errors.Is(err, ErrDuplicateUsername) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to seed admin %s: %w", username, err)
	}
	return nil
}

// Logout revokes the token until it expires when a revocation list is
// configured. Without one, logout only clears the client's copy.
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	if raw == "" || s.denylist == nil {
		return nil
	}
	claims, err := s.VerifyToken(ctx, raw)
	if err != nil {
		// Nothing to revoke for a token that is already unusable.
		return nil
	}
	if err := s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return err
	}
	s.log.WithField("user_id", claims.UserID).Info("session revoked")
	return nil
}
