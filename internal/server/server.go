package server

import (
	"errors"
	"fmt"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/password"
	"storefront/pkg/token"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Deps are the long-lived resources the HTTP server is built from.
type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	// Denylist is nil when logout is client-side only.
	Denylist repositories.TokenDenylist
	// Events is nil when no broker is configured.
	Events services.EventPublisher
	Log    *logrus.Logger
}

// NewTokenDenylist builds the revocation list selected by backend. rdb is
// only used by the redis backend.
func NewTokenDenylist(backend string, db *gorm.DB, rdb *redis.Client) (repositories.TokenDenylist, error) {
	switch backend {
	case config.RevocationNone:
		return nil, nil
	case config.RevocationDatabase:
		return repositories.NewGORMTokenDenylist(db), nil
	case config.RevocationRedis:
		if rdb == nil {
			return nil, errors.New("redis revocation backend requires a redis client")
		}
		return repositories.NewRedisTokenDenylist(rdb), nil
	default:
		return nil, fmt.Errorf("unknown revocation backend %q", backend)
	}
}

// New wires repositories, services, handlers and middleware into a Fiber app.
func New(deps Deps) (*fiber.App, error) {
	cfg := deps.Config
	log := deps.Log

	codec, err := token.NewCodec(cfg.Auth.Secret, cfg.Auth.TokenTTL, token.WithIssuer(cfg.Auth.Issuer))
	if err != nil {
		return nil, fmt.Errorf("failed to create token codec: %w", err)
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(deps.DB)
	productRepo := repositories.NewGORMProductRepository(deps.DB)
	categoryRepo := repositories.NewGORMCategoryRepository(deps.DB)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, password.NewHasher(cfg.Auth.BcryptCost), codec, deps.Denylist, deps.Events, log)
	userService := services.NewUserService(userRepo, deps.Events, log)
	productService := services.NewProductService(productRepo)
	categoryService := services.NewCategoryService(categoryRepo)

	if cfg.Auth.BootstrapAdminUsername != "" {
		if err := authService.EnsureAdmin(cfg.Auth.BootstrapAdminUsername, cfg.Auth.BootstrapAdminPassword); err != nil {
			return nil, err
		}
	}

	// --- Initialize Handlers ---
	extract := middleware.ExtractorFor(cfg.Auth)
	authHandler := handlers.NewAuthHandler(authService, cfg.Auth, extract, log)
	userHandler := handlers.NewUserHandler(userService, log)
	productHandler := handlers.NewProductHandler(productService, log)
	categoryHandler := handlers.NewCategoryHandler(categoryService, log)
	healthHandler := handlers.NewHealthHandler(func() error { return database.Ping(deps.DB) }, log)

	app := fiber.New(fiber.Config{
		AppName:      "storefront",
		ErrorHandler: middleware.ErrorHandler(log),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	})

	// --- Middleware ---
	middleware.Setup(app, cfg, log)
	app.Use(middleware.Authenticate(authService, extract, log))

	// --- Routes ---
	adminOnly := middleware.RequireRole(auth.RoleAdmin)
	healthHandler.RegisterRoutes(app)
	authHandler.RegisterRoutes(app)
	userHandler.RegisterRoutes(app, adminOnly)
	productHandler.RegisterRoutes(app, adminOnly)
	categoryHandler.RegisterRoutes(app, adminOnly)

	log.WithFields(logrus.Fields{
		"transport":  cfg.Auth.Transport,
		"revocation": cfg.Auth.RevocationBackend,
		"events":     deps.Events != nil,
	}).Info("HTTP server configured")

	return app, nil
}
