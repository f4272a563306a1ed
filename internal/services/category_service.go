package services

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CategoryService handles product categories.
type CategoryService struct {
	repo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// GetAllCategories retrieves all categories.
func (s *CategoryService) GetAllCategories() ([]models.Category, error) {
	return s.repo.GetAll()
}

// CreateCategory validates and stores a category with a unique name.
func (s *CategoryService) CreateCategory(name string) (*models.Category, error) {
	category := &models.Category{Category: strings.TrimSpace(name)}
	if err := validateStruct(category); err != nil {
		return nil, err
	}
	if err := s.repo.Create(category); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCategory, category.Category)
		}
		return nil, err
	}
	return category, nil
}

// DeleteCategory deletes a category by its ID.
func (s *CategoryService) DeleteCategory(id string) error {
	return notFoundAs(s.repo.Delete(id), ErrCategoryNotFound)
}
