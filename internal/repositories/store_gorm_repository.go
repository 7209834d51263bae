package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pazar/internal/apperrors"
	"pazar/internal/models"
)

// GORMStoreRepository is a GORM implementation of StoreRepository.
type GORMStoreRepository struct {
	db *gorm.DB
}

// NewGORMStoreRepository creates a new instance of GORMStoreRepository.
func NewGORMStoreRepository(db *gorm.DB) *GORMStoreRepository {
	return &GORMStoreRepository{db: db}
}

// Create inserts a new store.
func (r *GORMStoreRepository) Create(store *models.Store) error {
	if store.ID == "" {
		store.ID = uuid.New().String()
	}
	if err := r.db.Create(store).Error; err != nil {
		return apperrors.Internal("failed to create store", err)
	}
	return nil
}

// GetByID retrieves a store, embedded products included.
func (r *GORMStoreRepository) GetByID(id string) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("store %s not found", id)
		}
		return nil, apperrors.Internal("failed to get store", err)
	}
	return &store, nil
}

// GetByEmail retrieves a store by its login email (stored lowercase).
func (r *GORMStoreRepository) GetByEmail(email string) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("store with email %s not found", email)
		}
		return nil, apperrors.Internal("failed to get store by email", err)
	}
	return &store, nil
}

// GetByPhone retrieves a store by its registered phone number.
func (r *GORMStoreRepository) GetByPhone(phone string) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, "phone = ?", phone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("store with phone %s not found", phone)
		}
		return nil, apperrors.Internal("failed to get store by phone", err)
	}
	return &store, nil
}

// GetAll retrieves every store regardless of moderation state, newest first.
func (r *GORMStoreRepository) GetAll() ([]models.Store, error) {
	var stores []models.Store
	if err := r.db.Order("created_at desc").Find(&stores).Error; err != nil {
		return nil, apperrors.Internal("failed to list stores", err)
	}
	return stores, nil
}

// Save persists the whole store document, embedded products included. Last
// writer wins at store granularity.
func (r *GORMStoreRepository) Save(store *models.Store) error {
	res := r.db.Save(store)
	if res.Error != nil {
		return apperrors.Internal("failed to save store", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("store %s not found for update", store.ID)
	}
	return nil
}

// Delete removes a store and, with it, every product it embeds.
func (r *GORMStoreRepository) Delete(id string) error {
	res := r.db.Delete(&models.Store{}, "id = ?", id)
	if res.Error != nil {
		return apperrors.Internal("failed to delete store", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("store %s not found for deletion", id)
	}
	return nil
}
