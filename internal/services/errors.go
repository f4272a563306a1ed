package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"storefront/internal/repositories"
)

var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrUserIDRequired    = errors.New("user id is required")
	ErrProductNotFound   = errors.New("product not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrBadCredentials    = errors.New("invalid credentials")
	ErrInactiveAccount   = errors.New("account is inactive")
	ErrTokenRevoked      = errors.New("token has been revoked")
)

// ValidationError reports malformed input, one message per offending field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// notFoundAs replaces a repository miss with the domain sentinel.
func notFoundAs(err error, sentinel error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%w: %v", sentinel, err)
	}
	return err
}
