package handlers

import (
	"fmt"

	"storefront/internal/models"
	"storefront/internal/response"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	log     logrus.FieldLogger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, log logrus.FieldLogger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log.WithField("component", "product-handler"),
	}
}

// RegisterRoutes registers the product routes. Reads are public; writes go
// through gate.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, gate fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/add", gate, h.HandleCreateProduct)
	productRoutes.Put("/:id", gate, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", gate, h.HandleDeleteProduct)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return writeError(c, h.log, "could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return writeError(c, h.log, "could not retrieve product", err)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return invalidBody(c, fiber.StatusBadRequest)
	}

	if err := h.service.CreateProduct(&product); err != nil {
		return writeError(c, h.log, "could not create product", err)
	}
	return c.JSON(product)
}

// HandleUpdateProduct replaces an existing product's fields.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return invalidBody(c, fiber.StatusBadRequest)
	}
	product.ID = c.Params("id")

	if err := h.service.UpdateProduct(&product); err != nil {
		return writeError(c, h.log, "could not update product", err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if err := h.service.DeleteProduct(productID); err != nil {
		return writeError(c, h.log, "could not delete product", err)
	}
	return response.OK(c, fmt.Sprintf("Product with ID %s deleted successfully", productID), nil)
}
