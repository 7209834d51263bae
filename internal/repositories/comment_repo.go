package repositories

import "pazar/internal/models"

// CommentRepository defines the interface for the append-only review ledger.
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByProductID(productID string) ([]models.Comment, error)
}
