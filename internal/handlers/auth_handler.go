package handlers

import (
	"errors"
	"time"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/response"
	"storefront/internal/services"
	"storefront/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const badCredentialsMessage = "Please double-check your username and password, and try again."

// AuthHandler handles HTTP requests for registration and sessions.
type AuthHandler struct {
	authService *services.AuthService
	cfg         config.AuthConfig
	extract     middleware.TokenExtractor
	log         logrus.FieldLogger
}

// NewAuthHandler creates a new AuthHandler. extract must match the
// extractor used by the authenticator.
func NewAuthHandler(authService *services.AuthService, cfg config.AuthConfig, extract middleware.TokenExtractor, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
		extract:     extract,
		log:         log.WithField("component", "auth-handler"),
	}
}

// RegisterRoutes registers the account and session routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/users/add", h.HandleRegister)
	router.Post("/users/login", h.HandleLogin)
	router.Post("/users/logout", h.HandleLogout)
	router.Post("/api/user/verify-login", h.HandleVerifyLogin)
}

// HandleRegister adds a new user. Anyone may add a CUSTOMER; any other role
// needs a verified ADMIN session. Validation and duplicate failures are
// reported as 404 and told apart by the error code.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, fiber.StatusNotFound)
	}

	if input.Role != auth.RoleCustomer {
		session := middleware.SessionFrom(c)
		if err := auth.RequireRole(session, auth.RoleAdmin); err != nil {
			h.log.WithFields(logrus.Fields{"role": input.Role, "caller": session.UserID()}).Warn("privileged registration refused")
			if errors.Is(err, auth.ErrUnauthenticated) {
				return response.Unauthorized(c, "You are required to login")
			}
			return response.Forbidden(c, "Only admins can add users with this role")
		}
	}

	user, err := h.authService.Register(input)
	if err != nil {
		e := classify(err)
		if e.status == fiber.StatusBadRequest || e.status == fiber.StatusConflict {
			e.status = fiber.StatusNotFound
		}
		return e.write(c, h.log, "registration failed")
	}

	return response.OK(c, "User successfully added!", fiber.Map{"user": user})
}

// HandleLogin checks credentials and hands out a session token through the
// deployment's transport.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, fiber.StatusBadRequest)
	}

	result, err := h.authService.Login(input)
	if err != nil {
		e := classify(err)
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			e.message = "Username and password are required."
		case errors.Is(err, services.ErrUserNotFound):
			// Unknown usernames look exactly like wrong passwords.
			e.status, e.code, e.message = fiber.StatusBadRequest, response.CodeBadCredentials, badCredentialsMessage
		}
		return e.write(c, h.log, "login rejected")
	}

	body := fiber.Map{"decodedToken": result.Claims}
	if h.cfg.Transport == config.TransportHeader {
		body["token"] = result.Token
	} else {
		h.setTokenCookie(c, result.Token, result.Claims)
	}
	return response.OK(c, "Successfully Logged In", body)
}

// HandleLogout revokes the presented token when a revocation list is
// configured and clears the cookie.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.UserContext(), h.extract(c)); err != nil {
		return writeError(c, h.log, "logout failed", err)
	}
	if h.cfg.Transport == config.TransportCookie {
		h.clearTokenCookie(c)
	}
	return response.OK(c, "Logged out successfully", nil)
}

// HandleVerifyLogin reports whether the request carries a verified session.
func (h *AuthHandler) HandleVerifyLogin(c *fiber.Ctx) error {
	session := middleware.SessionFrom(c)
	if !session.IsVerified() {
		return response.Unauthorized(c, "You are required to login")
	}
	return response.OK(c, "Your account has been verified", fiber.Map{
		"decodedToken": fiber.Map{
			"user_id": session.UserID(),
			"role":    session.Role(),
			"jti":     session.TokenID(),
			"exp":     session.ExpiresAt().Unix(),
		},
	})
}

func (h *AuthHandler) setTokenCookie(c *fiber.Ctx, raw string, claims *token.Claims) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    raw,
		Path:     "/",
		Expires:  claims.ExpiresAt.Time,
		MaxAge:   int(h.authService.TokenTTL() / time.Second),
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func (h *AuthHandler) clearTokenCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
