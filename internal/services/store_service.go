package services

import (
	"time"

	"github.com/google/uuid"

	"pazar/internal/apperrors"
	"pazar/internal/models"
	"pazar/internal/repositories"
)

// ImageStore removes stored image files. Removal is best-effort: callers log
// failures and never propagate them.
type ImageStore interface {
	Remove(path string)
}

// StoreService handles business logic for the store aggregate: the embedded
// product collection, the moderation state machine and the public visibility
// gate. Every product mutation loads the owning store, edits the embedded
// list and saves the whole document back.
type StoreService struct {
	storeRepo repositories.StoreRepository
	images    ImageStore
}

// NewStoreService creates a new StoreService.
func NewStoreService(storeRepo repositories.StoreRepository, images ImageStore) *StoreService {
	return &StoreService{storeRepo: storeRepo, images: images}
}

// ProductInput carries the fields of a product create or patch request. Nil
// means "not supplied": on update such fields keep their prior value. The
// list-typed fields are loosely typed because clients send them as arrays,
// JSON-encoded strings or comma-separated strings.
type ProductInput struct {
	Name            *string
	Description     *string
	Price           *float64
	DiscountPrice   *float64
	Stock           *int
	MaxQty          *int
	Color           *string
	Size            *string
	Category        *string
	ProductCategory *string
	Colors          interface{}
	Sizes           interface{}
	Campaigns       interface{}
	Attributes      interface{}
}

// AddProduct appends a product to the caller's own store. Name, price and
// stock are required; everything else defaults.
func (s *StoreService) AddProduct(storeID string, caller Principal, in ProductInput, imagePath string) (*models.Product, error) {
	if err := requireOwner(caller, storeID); err != nil {
		return nil, err
	}
	if in.Name == nil || *in.Name == "" {
		return nil, apperrors.BadRequest("product name is required")
	}
	if in.Price == nil || *in.Price <= 0 {
		return nil, apperrors.BadRequest("product price must be greater than zero")
	}
	if in.Stock == nil || *in.Stock < 0 {
		return nil, apperrors.BadRequest("product stock must be zero or greater")
	}

	store, err := s.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}

	product := models.Product{
		ID:         uuid.New().String(),
		Name:       *in.Name,
		Price:      *in.Price,
		Stock:      *in.Stock,
		MaxQty:     models.MaxQtyDefault,
		Image:      imagePath,
		Colors:     models.NormalizeStringList(in.Colors),
		Sizes:      models.NormalizeStringList(in.Sizes),
		Campaigns:  models.NormalizeStringList(in.Campaigns),
		Attributes: models.NormalizeAttributes(in.Attributes),
		AddedAt:    time.Now(),
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Color != nil {
		product.Color = *in.Color
	}
	if in.Size != nil {
		product.Size = *in.Size
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.ProductCategory != nil {
		product.ProductCategory = *in.ProductCategory
	}
	if in.MaxQty != nil {
		product.MaxQty = models.ClampMaxQty(*in.MaxQty)
	}
	if in.DiscountPrice != nil && models.ValidDiscount(*in.DiscountPrice) {
		d := *in.DiscountPrice
		product.DiscountPrice = &d
	}

	store.Products = append(store.Products, product)
	if err := s.storeRepo.Save(store); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct applies a partial update to a product inside the caller's own
// store. Only supplied fields change; list fields go through the same
// normalization as on create.
func (s *StoreService) UpdateProduct(storeID, productID string, caller Principal, in ProductInput) (*models.Product, error) {
	if err := requireOwner(caller, storeID); err != nil {
		return nil, err
	}

	store, err := s.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	idx := store.FindProduct(productID)
	if idx < 0 {
		return nil, apperrors.NotFound("product %s not found in store %s", productID, storeID)
	}

	product := &store.Products[idx]
	if in.Name != nil {
		if *in.Name == "" {
			return nil, apperrors.BadRequest("product name cannot be empty")
		}
		product.Name = *in.Name
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return nil, apperrors.BadRequest("product price must be greater than zero")
		}
		product.Price = *in.Price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, apperrors.BadRequest("product stock must be zero or greater")
		}
		product.Stock = *in.Stock
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Color != nil {
		product.Color = *in.Color
	}
	if in.Size != nil {
		product.Size = *in.Size
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.ProductCategory != nil {
		product.ProductCategory = *in.ProductCategory
	}
	if in.MaxQty != nil {
		product.MaxQty = models.ClampMaxQty(*in.MaxQty)
	}
	if in.DiscountPrice != nil && models.ValidDiscount(*in.DiscountPrice) {
		d := *in.DiscountPrice
		product.DiscountPrice = &d
	}
	if in.Colors != nil {
		product.Colors = models.NormalizeStringList(in.Colors)
	}
	if in.Sizes != nil {
		product.Sizes = models.NormalizeStringList(in.Sizes)
	}
	if in.Campaigns != nil {
		product.Campaigns = models.NormalizeStringList(in.Campaigns)
	}
	if in.Attributes != nil {
		product.Attributes = models.NormalizeAttributes(in.Attributes)
	}

	if err := s.storeRepo.Save(store); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProductImage replaces a product's image reference. The superseded file
// is removed from storage as a best-effort side effect.
func (s *StoreService) UpdateProductImage(storeID, productID string, caller Principal, imagePath string) (*models.Product, error) {
	if err := requireOwner(caller, storeID); err != nil {
		return nil, err
	}

	store, err := s.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	idx := store.FindProduct(productID)
	if idx < 0 {
		return nil, apperrors.NotFound("product %s not found in store %s", productID, storeID)
	}

	oldImage := store.Products[idx].Image
	store.Products[idx].Image = imagePath
	if err := s.storeRepo.Save(store); err != nil {
		return nil, err
	}
	if oldImage != "" && s.images != nil {
		s.images.Remove(oldImage)
	}
	return &store.Products[idx], nil
}

// DeleteProduct removes a product from the caller's own store. Deleting a
// product that is already gone succeeds with removed=false so that concurrent
// deletes do not surface as errors.
func (s *StoreService) DeleteProduct(storeID, productID string, caller Principal) (bool, error) {
	if err := requireOwner(caller, storeID); err != nil {
		return false, err
	}

	store, err := s.storeRepo.GetByID(storeID)
	if err != nil {
		return false, err
	}
	idx := store.FindProduct(productID)
	if idx < 0 {
		return false, nil
	}

	image := store.Products[idx].Image
	store.Products = append(store.Products[:idx], store.Products[idx+1:]...)
	if err := s.storeRepo.Save(store); err != nil {
		return false, err
	}
	if image != "" && s.images != nil {
		s.images.Remove(image)
	}
	return true, nil
}

// GetPublicStore is the single visibility gate for customer-facing browsing:
// the store must exist, be approved and be active.
func (s *StoreService) GetPublicStore(storeID string) (*models.Store, error) {
	store, err := s.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store.Status != models.StoreApproved {
		return nil, apperrors.Forbidden("store is not approved")
	}
	if !store.Active {
		return nil, apperrors.Forbidden("store is not active")
	}
	return store, nil
}

// ListPublicStores returns approved, active stores, newest first.
func (s *StoreService) ListPublicStores() ([]models.Store, error) {
	stores, err := s.storeRepo.GetAll()
	if err != nil {
		return nil, err
	}
	visible := make([]models.Store, 0, len(stores))
	for _, store := range stores {
		if store.Visible() {
			visible = append(visible, store)
		}
	}
	return visible, nil
}

// ListAllStores returns every store regardless of moderation state. Admin use.
func (s *StoreService) ListAllStores() ([]models.Store, error) {
	return s.storeRepo.GetAll()
}

// GetOwnStore returns the caller's own store.
func (s *StoreService) GetOwnStore(caller Principal) (*models.Store, error) {
	claims, ok := caller.(StoreClaims)
	if !ok {
		return nil, apperrors.Forbidden("store account required")
	}
	return s.storeRepo.GetByID(claims.StoreID)
}

// ToggleActive flips the store's self-service active flag and returns the new
// value. It is independent of moderation: a non-approved store stays invisible
// no matter what this flag says. Allowed for the owning store or the admin.
func (s *StoreService) ToggleActive(storeID string, caller Principal) (bool, error) {
	switch c := caller.(type) {
	case AdminClaims:
	case StoreClaims:
		if c.StoreID != storeID {
			return false, apperrors.Forbidden("cannot toggle another store")
		}
	default:
		return false, apperrors.Forbidden("store or admin account required")
	}

	store, err := s.storeRepo.GetByID(storeID)
	if err != nil {
		return false, err
	}
	store.Active = !store.Active
	if err := s.storeRepo.Save(store); err != nil {
		return false, err
	}
	return store.Active, nil
}

// ApproveStore moves a store to approved and activates it. Re-approving an
// approved store is a no-op that still succeeds; a rejected store cannot come
// back through this flow.
func (s *StoreService) ApproveStore(storeID string, caller Principal) (*models.Store, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	store, err := s.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store.Status == models.StoreRejected {
		return nil, apperrors.BadRequest("rejected store cannot be approved")
	}
	if store.Status == models.StoreApproved {
		return store, nil
	}
	store.Status = models.StoreApproved
	store.Active = true
	if err := s.storeRepo.Save(store); err != nil {
		return nil, err
	}
	return store, nil
}

// RejectStore moves a store to rejected and deactivates it. Idempotent.
func (s *StoreService) RejectStore(storeID string, caller Principal) (*models.Store, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	store, err := s.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store.Status == models.StoreRejected {
		return store, nil
	}
	store.Status = models.StoreRejected
	store.Active = false
	if err := s.storeRepo.Save(store); err != nil {
		return nil, err
	}
	return store, nil
}

// DeleteStore removes a store and its embedded products. References held by
// customer favorites, carts and comments are left dangling on purpose; readers
// filter them out.
func (s *StoreService) DeleteStore(storeID string, caller Principal) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	return s.storeRepo.Delete(storeID)
}

func requireOwner(caller Principal, storeID string) error {
	claims, ok := caller.(StoreClaims)
	if !ok {
		return apperrors.Forbidden("store account required")
	}
	if claims.StoreID != storeID {
		return apperrors.Forbidden("cannot modify another store's products")
	}
	return nil
}

func requireAdmin(caller Principal) error {
	if _, ok := caller.(AdminClaims); !ok {
		return apperrors.Forbidden("admin account required")
	}
	return nil
}
