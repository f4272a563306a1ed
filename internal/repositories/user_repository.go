package repositories

import "storefront/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	ListExcept(id string) ([]models.User, error)
	UpdateStatus(id string, status models.AccountStatus) error
	Delete(id string) error
}
