package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// HealthHandler reports whether the service can reach its database.
type HealthHandler struct {
	ping func() error
	log  logrus.FieldLogger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(ping func() error, log logrus.FieldLogger) *HealthHandler {
	return &HealthHandler{ping: ping, log: log}
}

// RegisterRoutes registers the health check route.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

// HandleHealth returns 200 when the database answers and 503 otherwise.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	if err := h.ping(); err != nil {
		h.log.WithError(err).Warn("health check failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unhealthy"})
	}
	return c.JSON(fiber.Map{"status": "healthy"})
}
