package repositories

import "pazar/internal/models"

// StoreRepository defines the interface for store aggregate data access. The
// embedded product list always travels with the store: Save persists the whole
// document, which is the unit of write for every product mutation.
type StoreRepository interface {
	Create(store *models.Store) error
	GetByID(id string) (*models.Store, error)
	GetByEmail(email string) (*models.Store, error)
	GetByPhone(phone string) (*models.Store, error)
	GetAll() ([]models.Store, error)
	Save(store *models.Store) error
	Delete(id string) error
}
