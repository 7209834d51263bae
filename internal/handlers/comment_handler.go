package handlers

import (
	"github.com/gofiber/fiber/v2"

	"pazar/internal/services"
)

// CommentHandler handles the public review ledger.
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterRoutes registers the comment routes. Both are public: anyone can
// review and anyone can read.
func (h *CommentHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/comments", h.HandleCreate)
	router.Get("/comments/:productId", h.HandleList)
}

// CommentRequest is the body of a review submission.
type CommentRequest struct {
	ProductID string `json:"product_id"`
	StoreID   string `json:"store_id"`
	UserName  string `json:"user_name"`
	Stars     int    `json:"stars"`
	Comment   string `json:"comment"`
}

// HandleCreate appends a review to the ledger.
func (h *CommentHandler) HandleCreate(c *fiber.Ctx) error {
	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	comment, err := h.commentService.CreateComment(req.ProductID, req.StoreID, req.UserName, req.Stars, req.Comment)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// HandleList returns a product's reviews, newest first.
func (h *CommentHandler) HandleList(c *fiber.Ctx) error {
	comments, err := h.commentService.ListComments(c.Params("productId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(comments)
}
