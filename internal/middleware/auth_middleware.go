package middleware

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/response"
	"storefront/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const sessionKey = "session"

// TokenExtractor returns the raw session token carried by a request, or "".
type TokenExtractor func(c *fiber.Ctx) string

// CookieToken reads the token from the named cookie.
func CookieToken(name string) TokenExtractor {
	return func(c *fiber.Ctx) string {
		return c.Cookies(name)
	}
}

// BearerToken reads the token from an "Authorization: Bearer <token>" header.
func BearerToken() TokenExtractor {
	return func(c *fiber.Ctx) string {
		authHeader := c.Get(fiber.HeaderAuthorization)
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return ""
		}
		return strings.TrimSpace(parts[1])
	}
}

// ExtractorFor picks the single extraction strategy of the deployment.
func ExtractorFor(cfg config.AuthConfig) TokenExtractor {
	if cfg.Transport == config.TransportHeader {
		return BearerToken()
	}
	return CookieToken(cfg.CookieName)
}

// TokenVerifier verifies a raw token, including any revocation check.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, raw string) (*token.Claims, error)
}

// Authenticate attaches an auth.Session to every request. It never rejects:
// a missing, invalid, expired or revoked token yields an unverified session.
func Authenticate(verifier TokenVerifier, extract TokenExtractor, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := auth.Unverified()

		if raw := extract(c); raw != "" {
			claims, err := verifier.VerifyToken(c.UserContext(), raw)
			if err != nil {
				log.WithError(err).WithField("path", c.Path()).Debug("token not verified")
			} else {
				session = auth.Verified(claims)
			}
		}

		c.Locals(sessionKey, session)
		return c.Next()
	}
}

// SessionFrom returns the session attached by Authenticate. Requests that did
// not pass through Authenticate are unverified.
func SessionFrom(c *fiber.Ctx) auth.Session {
	if s, ok := c.Locals(sessionKey).(auth.Session); ok {
		return s
	}
	return auth.Unverified()
}

// RequireVerified rejects unverified requests with 401.
func RequireVerified() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := auth.RequireVerified(SessionFrom(c)); err != nil {
			return deny(c, err)
		}
		return c.Next()
	}
}

// RequireRole rejects unverified requests with 401 and other roles with 403.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := auth.RequireRole(SessionFrom(c), roles...); err != nil {
			return deny(c, err)
		}
		return c.Next()
	}
}

func deny(c *fiber.Ctx, err error) error {
	if errors.Is(err, auth.ErrUnauthenticated) {
		return response.Unauthorized(c, "You are required to login")
	}
	return response.Forbidden(c, "You don't have permission to access this resource")
}
