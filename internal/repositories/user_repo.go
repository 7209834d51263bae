package repositories

import "pazar/internal/models"

// UserRepository defines the interface for customer account data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetAll() ([]models.User, error)
	Save(user *models.User) error
}
