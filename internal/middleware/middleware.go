package middleware

import (
	"errors"
	"time"

	"storefront/internal/config"
	"storefront/internal/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

// Setup configures the global middleware chain.
func Setup(app *fiber.App, cfg *config.Config, log *logrus.Logger) {
	app.Use(recover.New())

	app.Use(helmet.New(helmet.Config{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	// A non-positive limit disables rate limiting.
	if cfg.HTTP.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.HTTP.RateLimitMax,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return response.Error(c, fiber.StatusTooManyRequests, response.CodeRateLimited, "Too many requests")
			},
		}))
	}

	format := "${status} | ${latency} | ${ip} | ${method} | ${path}\n"
	if !cfg.IsDev() {
		format = "${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n"
	}
	app.Use(logger.New(logger.Config{
		Format: format,
		Output: log.Writer(),
	}))

	// Credentials cannot be combined with a wildcard origin.
	origins := cfg.HTTP.AllowedOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: origins != "*",
	}))
}

// ErrorHandler turns errors escaping a handler, including recovered panics,
// into the standard failed response. Internals are logged, never returned.
func ErrorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
			return response.Error(c, fe.Code, codeFor(fe.Code), fe.Message)
		}

		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).Error("unhandled error")
		return response.InternalServerError(c)
	}
}

func codeFor(status int) string {
	switch status {
	case fiber.StatusUnauthorized:
		return response.CodeUnauthenticated
	case fiber.StatusForbidden:
		return response.CodeForbidden
	case fiber.StatusNotFound:
		return response.CodeNotFound
	case fiber.StatusConflict:
		return response.CodeDuplicate
	default:
		return response.CodeValidation
	}
}
