package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"pazar/internal/apperrors"
	"pazar/internal/models"
)

// GORMCommentRepository is a GORM implementation of CommentRepository.
type GORMCommentRepository struct {
	db *gorm.DB
}

// NewGORMCommentRepository creates a new instance of GORMCommentRepository.
func NewGORMCommentRepository(db *gorm.DB) *GORMCommentRepository {
	return &GORMCommentRepository{db: db}
}

// Create appends a comment to the ledger.
func (r *GORMCommentRepository) Create(comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if err := r.db.Create(comment).Error; err != nil {
		return apperrors.Internal("failed to create comment", err)
	}
	return nil
}

// GetByProductID retrieves all comments for a product, newest first.
func (r *GORMCommentRepository) GetByProductID(productID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("product_id = ?", productID).Order("created_at desc").Find(&comments).Error; err != nil {
		return nil, apperrors.Internal("failed to list comments", err)
	}
	return comments, nil
}
