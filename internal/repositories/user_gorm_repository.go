package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pazar/internal/apperrors"
	"pazar/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{db: db}
}

// Create inserts a new customer account.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		return apperrors.Internal("failed to create user", err)
	}
	return nil
}

// GetByID retrieves a customer with favorites and cart.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user %s not found", id)
		}
		return nil, apperrors.Internal("failed to get user", err)
	}
	return &user, nil
}

// GetByEmail retrieves a customer by login email (stored lowercase).
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user with email %s not found", email)
		}
		return nil, apperrors.Internal("failed to get user by email", err)
	}
	return &user, nil
}

// GetAll retrieves every registered customer, newest first.
func (r *GORMUserRepository) GetAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("created_at desc").Find(&users).Error; err != nil {
		return nil, apperrors.Internal("failed to list users", err)
	}
	return users, nil
}

// Save persists the whole user document, favorites and cart included.
func (r *GORMUserRepository) Save(user *models.User) error {
	res := r.db.Save(user)
	if res.Error != nil {
		return apperrors.Internal("failed to save user", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("user %s not found for update", user.ID)
	}
	return nil
}
