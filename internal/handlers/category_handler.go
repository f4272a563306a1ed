package handlers

import (
	"storefront/internal/response"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// CategoryHandler handles HTTP requests for product categories.
type CategoryHandler struct {
	service *services.CategoryService
	log     logrus.FieldLogger
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService, log logrus.FieldLogger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		log:     log.WithField("component", "category-handler"),
	}
}

// RegisterRoutes registers the category routes. Writes go through gate.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, gate fiber.Handler) {
	categoryRoutes := router.Group("/category")
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Post("/add", gate, h.HandleCreateCategory)
	categoryRoutes.Delete("/:id", gate, h.HandleDeleteCategory)
}

// HandleGetCategories lists all categories.
func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories()
	if err != nil {
		return writeError(c, h.log, "could not retrieve categories", err)
	}
	return response.OK(c, "Successfully retrieved data", fiber.Map{"categories": categories})
}

type categoryRequest struct {
	Category string `json:"category" form:"category"`
}

// HandleCreateCategory adds a category with a unique name.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, fiber.StatusBadRequest)
	}

	category, err := h.service.CreateCategory(req.Category)
	if err != nil {
		return writeError(c, h.log, "could not create category", err)
	}
	return response.OK(c, "Category successfully saved", fiber.Map{"category": category})
}

// HandleDeleteCategory deletes a category by its ID.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	if err := h.service.DeleteCategory(c.Params("id")); err != nil {
		return writeError(c, h.log, "could not delete category", err)
	}
	return response.OK(c, "Category deleted successfully", nil)
}
