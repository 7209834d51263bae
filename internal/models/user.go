package models

import "time"

// User is a customer account. Favorites and the cart are lists of references
// into other stores' embedded product lists, stored as JSON documents on the
// user row; the referenced product may be gone by the time they are read.
type User struct {
	ID           string       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name         string       `json:"name" validate:"required,min=2,max=100"`
	Email        string       `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	PasswordHash string       `json:"-" gorm:"type:varchar(255)"`
	Phone        string       `json:"phone"`
	Favorites    FavoriteList `json:"favorites" gorm:"type:text;serializer:json"`
	Cart         CartList     `json:"cart" gorm:"type:text;serializer:json"`
	Active       bool         `json:"active"`
	CreatedAt    time.Time    `json:"created_at"`
}

// FavoriteList holds a user's favorite references, at most one per
// (product, store) pair.
type FavoriteList []FavoriteItem

// FavoriteItem references a product inside some store.
type FavoriteItem struct {
	ProductID string    `json:"product_id"`
	StoreID   string    `json:"store_id"`
	AddedAt   time.Time `json:"added_at"`
}

// CartList holds a user's cart entries, at most one per (product, store) pair;
// repeated adds accumulate into Quantity.
type CartList []CartItem

// CartItem references a product inside some store with a desired quantity.
type CartItem struct {
	ProductID string    `json:"product_id"`
	StoreID   string    `json:"store_id"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

func (l FavoriteList) Find(productID, storeID string) int {
	for i := range l {
		if l[i].ProductID == productID && l[i].StoreID == storeID {
			return i
		}
	}
	return -1
}

func (l CartList) Find(productID, storeID string) int {
	for i := range l {
		if l[i].ProductID == productID && l[i].StoreID == storeID {
			return i
		}
	}
	return -1
}
