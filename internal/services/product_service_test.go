package services_test

import (
	"errors"
	"fmt"
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expectedProducts := []models.Product{
		{ID: "1", Category: "Laptops", Name: "Product A", Price: 10.0, Quantity: 100},
		{ID: "2", Category: "Laptops", Name: "Product B", Price: 20.0, Quantity: 50},
	}

	mockRepo.On("GetAll").Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts()

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expectedProduct := &models.Product{ID: "1", Category: "Laptops", Name: "Product A", Price: 10.0, Quantity: 100}

	mockRepo.On("GetByID", "1").Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID("1")
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)

	mockRepo.On("GetByID", "99").Return(nil, fmt.Errorf("product with ID 99: %w", repositories.ErrNotFound)).Once()
	product, err = service.GetProductByID("99")
	assert.ErrorIs(t, err, services.ErrProductNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	newProduct := &models.Product{ID: "client-chosen", Category: " Phones ", Name: "New Product", Price: 50.0, Quantity: 20}

	mockRepo.On("Create", mock.MatchedBy(func(p *models.Product) bool {
		return p.ID == "" && p.Category == "Phones"
	})).Return(nil).Once()
	err := service.CreateProduct(newProduct)
	assert.NoError(t, err)

	mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(fmt.Errorf("database error")).Once()
	err = service.CreateProduct(&models.Product{Category: "Phones", Name: "Other", Price: 1})
	assert.ErrorContains(t, err, "database error")
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct_Validation(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	err := service.CreateProduct(&models.Product{Price: -1, Quantity: -5})
	var verr *services.ValidationError
	if assert.True(t, errors.As(err, &verr)) {
		assert.Contains(t, verr.Fields, "category")
		assert.Contains(t, verr.Fields, "product")
		assert.Contains(t, verr.Fields, "price")
		assert.Contains(t, verr.Fields, "quantity")
	}
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	updatedProduct := &models.Product{ID: "1", Category: "Laptops", Name: "Product A Updated", Price: 12.0, Quantity: 95}

	mockRepo.On("Update", updatedProduct).Return(nil).Once()
	err := service.UpdateProduct(updatedProduct)
	assert.NoError(t, err)

	missing := &models.Product{ID: "99", Category: "Laptops", Name: "NonExistent", Price: 1.0, Quantity: 1}
	mockRepo.On("Update", missing).Return(fmt.Errorf("product with ID 99 for update: %w", repositories.ErrNotFound)).Once()
	err = service.UpdateProduct(missing)
	assert.ErrorIs(t, err, services.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("Delete", "1").Return(nil).Once()
	err := service.DeleteProduct("1")
	assert.NoError(t, err)

	mockRepo.On("Delete", "99").Return(fmt.Errorf("product with ID 99 for deletion: %w", repositories.ErrNotFound)).Once()
	err = service.DeleteProduct("99")
	assert.ErrorIs(t, err, services.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}
