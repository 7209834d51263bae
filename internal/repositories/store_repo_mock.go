package repositories

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"pazar/internal/apperrors"
	"pazar/internal/models"
)

// MockStoreRepository is an in-memory implementation of StoreRepository.
type MockStoreRepository struct {
	stores map[string]models.Store
	mu     sync.RWMutex
}

// NewMockStoreRepository creates a new instance of MockStoreRepository.
func NewMockStoreRepository() *MockStoreRepository {
	return &MockStoreRepository{stores: make(map[string]models.Store)}
}

// Create adds a new store.
func (r *MockStoreRepository) Create(store *models.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if store.ID == "" {
		store.ID = uuid.New().String()
	}
	if store.CreatedAt.IsZero() {
		store.CreatedAt = time.Now()
	}
	r.stores[store.ID] = *store
	return nil
}

// GetByID returns a store by its ID.
func (r *MockStoreRepository) GetByID(id string) (*models.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	store, ok := r.stores[id]
	if !ok {
		return nil, apperrors.NotFound("store %s not found", id)
	}
	return &store, nil
}

// GetByEmail returns a store by its email.
func (r *MockStoreRepository) GetByEmail(email string) (*models.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.stores {
		if s.Email == email {
			store := s
			return &store, nil
		}
	}
	return nil, apperrors.NotFound("store with email %s not found", email)
}

// GetByPhone returns a store by its phone number.
func (r *MockStoreRepository) GetByPhone(phone string) (*models.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.stores {
		if s.Phone == phone {
			store := s
			return &store, nil
		}
	}
	return nil, apperrors.NotFound("store with phone %s not found", phone)
}

// GetAll returns all stores, newest first.
func (r *MockStoreRepository) GetAll() ([]models.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	storeList := make([]models.Store, 0, len(r.stores))
	for _, s := range r.stores {
		storeList = append(storeList, s)
	}
	sort.Slice(storeList, func(i, j int) bool {
		return storeList[i].CreatedAt.After(storeList[j].CreatedAt)
	})
	return storeList, nil
}

// Save replaces the whole store document.
func (r *MockStoreRepository) Save(store *models.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.stores[store.ID]; !ok {
		return apperrors.NotFound("store %s not found for update", store.ID)
	}
	r.stores[store.ID] = *store
	return nil
}

// Delete removes a store by its ID.
func (r *MockStoreRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.stores[id]; !ok {
		return apperrors.NotFound("store %s not found for deletion", id)
	}
	delete(r.stores, id)
	return nil
}
