package services

import (
	"time"

	"pazar/internal/apperrors"
	"pazar/internal/models"
	"pazar/internal/repositories"
)

// CommentService handles the append-only review ledger. Comments reference
// products by id only and are never checked against, or removed with, the
// product they mention.
type CommentService struct {
	commentRepo repositories.CommentRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repositories.CommentRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo}
}

// CreateComment appends a review. Stars must be within [1,5].
func (s *CommentService) CreateComment(productID, storeID, userName string, stars int, text string) (*models.Comment, error) {
	if productID == "" || storeID == "" || userName == "" || text == "" {
		return nil, apperrors.BadRequest("product id, store id, user name and comment are required")
	}
	if stars < 1 || stars > 5 {
		return nil, apperrors.BadRequest("stars must be between 1 and 5")
	}

	comment := &models.Comment{
		ProductID: productID,
		StoreID:   storeID,
		UserName:  userName,
		Stars:     stars,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns a product's comments, newest first.
func (s *CommentService) ListComments(productID string) ([]models.Comment, error) {
	return s.commentRepo.GetByProductID(productID)
}
