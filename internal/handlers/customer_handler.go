package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"pazar/internal/middleware"
	"pazar/internal/services"
)

// CustomerHandler handles the customer-scoped routes: favorites, cart,
// checkout and the customer's own profile.
type CustomerHandler struct {
	customerService *services.CustomerService
	checkoutService *services.CheckoutService
	validate        *validator.Validate
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerService *services.CustomerService, checkoutService *services.CheckoutService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		checkoutService: checkoutService,
		validate:        validator.New(),
	}
}

// RegisterRoutes registers the customer routes; all require a customer token.
func (h *CustomerHandler) RegisterRoutes(router fiber.Router, authGuard fiber.Handler) {
	me := router.Group("", authGuard, middleware.CustomerOnly())
	me.Get("/me/user", h.HandleGetOwnUser)

	me.Post("/favorites", h.HandleAddFavorite)
	me.Get("/favorites", h.HandleListFavorites)
	me.Delete("/favorites/:storeId/:productId", h.HandleRemoveFavorite)

	me.Post("/cart", h.HandleAddToCart)
	me.Get("/cart", h.HandleListCart)
	me.Put("/cart", h.HandleSetCartQuantity)
	me.Delete("/cart/:storeId/:productId", h.HandleRemoveFromCart)
	me.Delete("/cart", h.HandleClearCart)
	me.Post("/cart/checkout", h.HandleCheckout)
}

func (h *CustomerHandler) callerID(c *fiber.Ctx) string {
	claims, _ := middleware.PrincipalFrom(c).(services.CustomerClaims)
	return claims.UserID
}

// HandleGetOwnUser returns the authenticated customer's own document.
func (h *CustomerHandler) HandleGetOwnUser(c *fiber.Ctx) error {
	user, err := h.customerService.GetOwnUser(middleware.PrincipalFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(user)
}

// FavoriteRequest references a product inside a store.
type FavoriteRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	StoreID   string `json:"store_id" validate:"required"`
}

// HandleAddFavorite records a favorite reference.
func (h *CustomerHandler) HandleAddFavorite(c *fiber.Ctx) error {
	var req FavoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "product_id and store_id are required"})
	}
	if err := h.customerService.AddFavorite(h.callerID(c), req.ProductID, req.StoreID); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "favorite added"})
}

// HandleListFavorites returns the resolved favorites; dangling references are
// already filtered out.
func (h *CustomerHandler) HandleListFavorites(c *fiber.Ctx) error {
	favorites, err := h.customerService.ListFavorites(h.callerID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(favorites)
}

// HandleRemoveFavorite drops a favorite; removing a missing one succeeds.
func (h *CustomerHandler) HandleRemoveFavorite(c *fiber.Ctx) error {
	if err := h.customerService.RemoveFavorite(h.callerID(c), c.Params("productId"), c.Params("storeId")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "favorite removed"})
}

// CartRequest adds or updates a cart entry.
type CartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	StoreID   string `json:"store_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// HandleAddToCart adds quantity units of a product; an existing entry for the
// same product accumulates instead of duplicating.
func (h *CustomerHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req CartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "product_id and store_id are required"})
	}
	if err := h.customerService.AddToCart(h.callerID(c), req.ProductID, req.StoreID, req.Quantity); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "added to cart"})
}

// HandleListCart returns the resolved cart lines and total.
func (h *CustomerHandler) HandleListCart(c *fiber.Ctx) error {
	view, err := h.customerService.ListCart(h.callerID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(view)
}

// HandleSetCartQuantity replaces the quantity of an existing entry.
func (h *CustomerHandler) HandleSetCartQuantity(c *fiber.Ctx) error {
	var req CartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "product_id and store_id are required"})
	}
	if err := h.customerService.SetCartQuantity(h.callerID(c), req.ProductID, req.StoreID, req.Quantity); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "cart updated"})
}

// HandleRemoveFromCart drops a cart entry; removing a missing one succeeds.
func (h *CustomerHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	if err := h.customerService.RemoveFromCart(h.callerID(c), c.Params("productId"), c.Params("storeId")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "removed from cart"})
}

// HandleClearCart empties the cart.
func (h *CustomerHandler) HandleClearCart(c *fiber.Ctx) error {
	if err := h.customerService.ClearCart(h.callerID(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "cart cleared"})
}

// CheckoutRequest carries an optional note for the handoff message.
type CheckoutRequest struct {
	Note string `json:"note"`
}

// HandleCheckout publishes the resolved cart as an out-of-band order message
// and clears the cart.
func (h *CustomerHandler) HandleCheckout(c *fiber.Ctx) error {
	var req CheckoutRequest
	// The body is optional; parse failures just mean no note.
	_ = c.BodyParser(&req)

	handoff, err := h.checkoutService.Checkout(h.callerID(c), req.Note)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(handoff)
}
