package services

import (
	"time"

	"pazar/internal/apperrors"
	"pazar/internal/models"
	"pazar/internal/repositories"
)

// FavoriteView is a favorite reference resolved against the current product.
type FavoriteView struct {
	StoreID   string         `json:"store_id"`
	StoreName string         `json:"store_name"`
	Product   models.Product `json:"product"`
	AddedAt   time.Time      `json:"added_at"`
}

// CartLineView is a cart entry resolved against the current product snapshot.
// LineTotal uses the discount price when one is set.
type CartLineView struct {
	ProductID     string    `json:"product_id"`
	StoreID       string    `json:"store_id"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	DiscountPrice *float64  `json:"discount_price,omitempty"`
	Image         string    `json:"image"`
	StoreName     string    `json:"store_name"`
	StorePhone    string    `json:"store_phone"`
	MaxQty        int       `json:"max_qty"`
	Quantity      int       `json:"quantity"`
	LineTotal     float64   `json:"line_total"`
	AddedAt       time.Time `json:"added_at"`
}

// CartView is the resolved cart: dangling entries are already filtered out,
// and Total is computed from the surviving lines only.
type CartView struct {
	Lines []CartLineView `json:"lines"`
	Total float64        `json:"total"`
}

// CustomerService handles favorites and the cart: customer-owned reference
// lists pointing into other stores' embedded product collections. References
// are resolved at read time and entries whose store or product has vanished
// are dropped silently, never surfaced as errors.
type CustomerService struct {
	userRepo  repositories.UserRepository
	storeRepo repositories.StoreRepository
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(userRepo repositories.UserRepository, storeRepo repositories.StoreRepository) *CustomerService {
	return &CustomerService{userRepo: userRepo, storeRepo: storeRepo}
}

// GetOwnUser returns the caller's own account.
func (s *CustomerService) GetOwnUser(caller Principal) (*models.User, error) {
	claims, ok := caller.(CustomerClaims)
	if !ok {
		return nil, apperrors.Forbidden("customer account required")
	}
	return s.userRepo.GetByID(claims.UserID)
}

// ListCustomers returns every registered customer. Admin use.
func (s *CustomerService) ListCustomers(caller Principal) ([]models.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.userRepo.GetAll()
}

// AddFavorite records a product reference. Favoriting is a reference, not a
// copy: the product's existence is not checked.
func (s *CustomerService) AddFavorite(userID, productID, storeID string) error {
	if productID == "" || storeID == "" {
		return apperrors.BadRequest("product id and store id are required")
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user.Favorites.Find(productID, storeID) >= 0 {
		return apperrors.Conflict("favorite", "product is already a favorite")
	}
	user.Favorites = append(user.Favorites, models.FavoriteItem{
		ProductID: productID,
		StoreID:   storeID,
		AddedAt:   time.Now(),
	})
	return s.userRepo.Save(user)
}

// RemoveFavorite drops a favorite reference. Absence is not an error.
func (s *CustomerService) RemoveFavorite(userID, productID, storeID string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	idx := user.Favorites.Find(productID, storeID)
	if idx < 0 {
		return nil
	}
	user.Favorites = append(user.Favorites[:idx], user.Favorites[idx+1:]...)
	return s.userRepo.Save(user)
}

// ListFavorites resolves each favorite against its store's current product
// list. Dangling references are filtered out of the result.
func (s *CustomerService) ListFavorites(userID string) ([]FavoriteView, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	stores := make(map[string]*models.Store)
	views := make([]FavoriteView, 0, len(user.Favorites))
	for _, fav := range user.Favorites {
		store := s.lookupStore(stores, fav.StoreID)
		if store == nil {
			continue
		}
		idx := store.FindProduct(fav.ProductID)
		if idx < 0 {
			continue
		}
		views = append(views, FavoriteView{
			StoreID:   store.ID,
			StoreName: store.Name,
			Product:   store.Products[idx],
			AddedAt:   fav.AddedAt,
		})
	}
	return views, nil
}

// AddToCart puts quantity units of a product into the cart. Unlike favorites,
// the referenced store and product must exist at write time. Adding a pair
// that is already in the cart increments its quantity.
func (s *CustomerService) AddToCart(userID, productID, storeID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	store, err := s.storeRepo.GetByID(storeID)
	if err != nil {
		return err
	}
	if store.FindProduct(productID) < 0 {
		return apperrors.NotFound("product %s not found in store %s", productID, storeID)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if idx := user.Cart.Find(productID, storeID); idx >= 0 {
		user.Cart[idx].Quantity += quantity
	} else {
		user.Cart = append(user.Cart, models.CartItem{
			ProductID: productID,
			StoreID:   storeID,
			Quantity:  quantity,
			AddedAt:   time.Now(),
		})
	}
	return s.userRepo.Save(user)
}

// SetCartQuantity replaces the quantity of an existing cart entry.
func (s *CustomerService) SetCartQuantity(userID, productID, storeID string, quantity int) error {
	if quantity < 1 {
		return apperrors.BadRequest("quantity must be at least 1")
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	idx := user.Cart.Find(productID, storeID)
	if idx < 0 {
		return apperrors.NotFound("cart entry for product %s not found", productID)
	}
	user.Cart[idx].Quantity = quantity
	return s.userRepo.Save(user)
}

// RemoveFromCart drops a cart entry. Absence is not an error.
func (s *CustomerService) RemoveFromCart(userID, productID, storeID string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	idx := user.Cart.Find(productID, storeID)
	if idx < 0 {
		return nil
	}
	user.Cart = append(user.Cart[:idx], user.Cart[idx+1:]...)
	return s.userRepo.Save(user)
}

// ClearCart empties the cart. Idempotent.
func (s *CustomerService) ClearCart(userID string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if len(user.Cart) == 0 {
		return nil
	}
	user.Cart = models.CartList{}
	return s.userRepo.Save(user)
}

// ListCart resolves every cart entry against the current product snapshot.
// Entries whose store or product has been deleted are filtered out, and the
// total is computed from the filtered list, never the raw reference count.
func (s *CustomerService) ListCart(userID string) (*CartView, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	stores := make(map[string]*models.Store)
	view := &CartView{Lines: make([]CartLineView, 0, len(user.Cart))}
	for _, item := range user.Cart {
		store := s.lookupStore(stores, item.StoreID)
		if store == nil {
			continue
		}
		idx := store.FindProduct(item.ProductID)
		if idx < 0 {
			continue
		}
		product := store.Products[idx]
		line := CartLineView{
			ProductID:     product.ID,
			StoreID:       store.ID,
			Name:          product.Name,
			Price:         product.Price,
			DiscountPrice: product.DiscountPrice,
			Image:         product.Image,
			StoreName:     store.Name,
			StorePhone:    store.Phone,
			MaxQty:        product.MaxQty,
			Quantity:      item.Quantity,
			LineTotal:     product.UnitPrice() * float64(item.Quantity),
			AddedAt:       item.AddedAt,
		}
		view.Lines = append(view.Lines, line)
		view.Total += line.LineTotal
	}
	return view, nil
}

// lookupStore memoizes store fetches for one resolution pass. A store that
// cannot be loaded resolves to nil and its entries are skipped.
func (s *CustomerService) lookupStore(cache map[string]*models.Store, storeID string) *models.Store {
	if store, ok := cache[storeID]; ok {
		return store
	}
	store, err := s.storeRepo.GetByID(storeID)
	if err != nil {
		store = nil
	}
	cache[storeID] = store
	return store
}
