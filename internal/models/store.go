package models

import "time"

// StoreStatus is the moderation state of a store. Visibility to customers
// additionally requires the store's own Active flag.
type StoreStatus string

const (
	StorePending  StoreStatus = "pending"
	StoreApproved StoreStatus = "approved"
	StoreRejected StoreStatus = "rejected"
)

// Store is a merchant tenant. Its products are embedded in the store row as a
// JSON document; a product has no identity outside its owning store, and every
// product mutation is a whole-store read-modify-write.
type Store struct {
	ID           string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name         string      `json:"name" validate:"required,min=2,max=100"`
	Owner        string      `json:"owner" validate:"required"`
	Email        string      `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	PasswordHash string      `json:"-" gorm:"type:varchar(255)"`
	Phone        string      `json:"phone" gorm:"uniqueIndex;type:varchar(32)" validate:"required"`
	Description  string      `json:"description"`
	Status       StoreStatus `json:"status" gorm:"type:varchar(16);default:pending"`
	Active       bool        `json:"active"`
	Products     ProductList `json:"products" gorm:"type:text;serializer:json"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Visible reports whether the store may appear in customer-facing listings.
func (s *Store) Visible() bool {
	return s.Status == StoreApproved && s.Active
}

// FindProduct returns the index of the product with the given ID inside the
// embedded list, or -1.
func (s *Store) FindProduct(productID string) int {
	for i := range s.Products {
		if s.Products[i].ID == productID {
			return i
		}
	}
	return -1
}

// ProductList is the embedded product collection of a store.
type ProductList []Product

// Product lives inside exactly one store's embedded list.
type Product struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Price           float64           `json:"price"`
	DiscountPrice   *float64          `json:"discount_price,omitempty"`
	Stock           int               `json:"stock"`
	MaxQty          int               `json:"max_qty"`
	Image           string            `json:"image"`
	Description     string            `json:"description"`
	Color           string            `json:"color"`
	Size            string            `json:"size"`
	Category        string            `json:"category"`
	ProductCategory string            `json:"product_category"`
	Colors          []string          `json:"colors"`
	Sizes           []string          `json:"sizes"`
	Campaigns       []string          `json:"campaigns"`
	Attributes      map[string]string `json:"attributes"`
	AddedAt         time.Time         `json:"added_at"`
}

// UnitPrice is the price a cart line is charged at: the discount price when
// one is set, the regular price otherwise.
func (p *Product) UnitPrice() float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}
