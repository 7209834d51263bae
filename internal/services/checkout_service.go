package services

import (
	"encoding/json"
	"log"
	"time"

	"pazar/internal/apperrors"
	"pazar/internal/repositories"
)

// HandoffRoutingKey is the queue checkout messages are published to on the
// default exchange.
const HandoffRoutingKey = "order.handoff"

// Publisher delivers checkout handoff messages to the outside world. Orders
// are not persisted here; the message is the order.
type Publisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// CheckoutHandoff is the message published when a customer checks out.
type CheckoutHandoff struct {
	UserID    string         `json:"user_id"`
	Name      string         `json:"name"`
	Phone     string         `json:"phone"`
	Note      string         `json:"note,omitempty"`
	Lines     []CartLineView `json:"lines"`
	Total     float64        `json:"total"`
	CreatedAt time.Time      `json:"created_at"`
}

// CheckoutService turns a resolved cart into an out-of-band order message and
// clears the cart afterwards.
type CheckoutService struct {
	customers *CustomerService
	userRepo  repositories.UserRepository
	publisher Publisher
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(customers *CustomerService, userRepo repositories.UserRepository, publisher Publisher) *CheckoutService {
	return &CheckoutService{customers: customers, userRepo: userRepo, publisher: publisher}
}

// Checkout resolves the customer's cart, publishes the handoff message and
// empties the cart. The totals come from the filtered resolved lines, so
// dangling entries never reach the message.
func (s *CheckoutService) Checkout(userID, note string) (*CheckoutHandoff, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	view, err := s.customers.ListCart(userID)
	if err != nil {
		return nil, err
	}
	if len(view.Lines) == 0 {
		return nil, apperrors.BadRequest("cart is empty")
	}

	handoff := &CheckoutHandoff{
		UserID:    user.ID,
		Name:      user.Name,
		Phone:     user.Phone,
		Note:      note,
		Lines:     view.Lines,
		Total:     view.Total,
		CreatedAt: time.Now(),
	}

	if s.publisher != nil {
		body, err := json.Marshal(handoff)
		if err != nil {
			return nil, apperrors.Internal("failed to marshal checkout handoff", err)
		}
		if err := s.publisher.Publish("", HandoffRoutingKey, body); err != nil {
			return nil, apperrors.Internal("failed to publish checkout handoff", err)
		}
	} else {
		log.Printf("checkout for user %s: no publisher configured, handoff not sent", userID)
	}

	if err := s.customers.ClearCart(userID); err != nil {
		return nil, err
	}
	return handoff, nil
}
