package models

import "time"

// Comment is an append-only product review. It is keyed by product reference
// only and is never validated against, or cascaded with, the product or store
// it mentions, so reviews outlive delisted products.
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string    `json:"product_id" gorm:"index;type:varchar(36)"`
	StoreID   string    `json:"store_id" gorm:"type:varchar(36)"`
	UserName  string    `json:"user_name"`
	Stars     int       `json:"stars"`
	Text      string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
