package services

import (
	"strings"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, notFoundAs(err, ErrProductNotFound)
	}
	return product, nil
}

// CreateProduct validates and stores a new product. The ID is always assigned here.
func (s *ProductService) CreateProduct(product *models.Product) error {
	normalizeProduct(product)
	if err := validateStruct(product); err != nil {
		return err
	}
	product.ID = ""
	return s.repo.Create(product)
}

// UpdateProduct validates and overwrites an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	normalizeProduct(product)
	if err := validateStruct(product); err != nil {
		return err
	}
	return notFoundAs(s.repo.Update(product), ErrProductNotFound)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return notFoundAs(s.repo.Delete(id), ErrProductNotFound)
}

func normalizeProduct(p *models.Product) {
	p.Category = strings.TrimSpace(p.Category)
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
}
