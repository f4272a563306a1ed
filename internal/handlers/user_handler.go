package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/response"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// UserHandler handles HTTP requests for user administration.
type UserHandler struct {
	service *services.UserService
	log     logrus.FieldLogger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService, log logrus.FieldLogger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.WithField("component", "user-handler"),
	}
}

// RegisterRoutes registers the user administration routes behind gate.
func (h *UserHandler) RegisterRoutes(router fiber.Router, gate fiber.Handler) {
	userRoutes := router.Group("/api/store/users", gate)
	userRoutes.Get("/", h.HandleListUsers)
	userRoutes.Put("/status/:id", h.HandleUpdateStatus)
	userRoutes.Delete("/:id", h.HandleDeleteUser)
}

// HandleListUsers lists every user except the caller.
func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.service.ListOthers(middleware.SessionFrom(c))
	if err != nil {
		return writeError(c, h.log, "could not list users", err)
	}
	return response.OK(c, "Successfully retrieved users", fiber.Map{"users": users})
}

type statusRequest struct {
	Status models.AccountStatus `json:"status"`
}

// HandleUpdateStatus sets the account status of another user to the
// status given in the body.
func (h *UserHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, fiber.StatusBadRequest)
	}

	users, err := h.service.SetStatus(middleware.SessionFrom(c), c.Params("id"), req.Status)
	if err != nil {
		return writeError(c, h.log, "could not update account status", err)
	}
	return response.OK(c, "User account successfully updated.", fiber.Map{"data": users})
}

// HandleDeleteUser deletes another user's account.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	users, err := h.service.Delete(middleware.SessionFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, "could not delete user", err)
	}
	return response.OK(c, "User deleted successfully.", fiber.Map{"data": users})
}
