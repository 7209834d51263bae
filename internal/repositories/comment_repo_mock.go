package repositories

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"pazar/internal/models"
)

// MockCommentRepository is an in-memory implementation of CommentRepository.
type MockCommentRepository struct {
	comments []models.Comment
	mu       sync.RWMutex
}

// NewMockCommentRepository creates a new instance of MockCommentRepository.
func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{}
}

// Create appends a comment.
func (r *MockCommentRepository) Create(comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	r.comments = append(r.comments, *comment)
	return nil
}

// GetByProductID returns comments for a product, newest first.
func (r *MockCommentRepository) GetByProductID(productID string) ([]models.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Comment
	for _, c := range r.comments {
		if c.ProductID == productID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
