package handlers

import (
	"github.com/gofiber/fiber/v2"

	"pazar/internal/middleware"
	"pazar/internal/services"
)

// AdminHandler handles the privileged oversight routes: moderation
// transitions, store deletion and account listings.
type AdminHandler struct {
	storeService    *services.StoreService
	customerService *services.CustomerService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(storeService *services.StoreService, customerService *services.CustomerService) *AdminHandler {
	return &AdminHandler{storeService: storeService, customerService: customerService}
}

// RegisterRoutes registers the admin routes; all require an admin token.
func (h *AdminHandler) RegisterRoutes(router fiber.Router, authGuard fiber.Handler) {
	admin := router.Group("/admin", authGuard, middleware.AdminOnly())
	admin.Get("/stores", h.HandleListStores)
	admin.Get("/registered-users", h.HandleListUsers)
	admin.Post("/stores/:id/approve", h.HandleApprove)
	admin.Post("/stores/:id/reject", h.HandleReject)
	admin.Delete("/stores/:id", h.HandleDeleteStore)
}

// HandleListStores lists every store regardless of moderation state.
func (h *AdminHandler) HandleListStores(c *fiber.Ctx) error {
	stores, err := h.storeService.ListAllStores()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stores)
}

// HandleListUsers lists every registered customer.
func (h *AdminHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.customerService.ListCustomers(middleware.PrincipalFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(users)
}

// HandleApprove moves a store to approved, which also activates it.
func (h *AdminHandler) HandleApprove(c *fiber.Ctx) error {
	store, err := h.storeService.ApproveStore(c.Params("id"), middleware.PrincipalFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(store)
}

// HandleReject moves a store to rejected, which also deactivates it.
func (h *AdminHandler) HandleReject(c *fiber.Ctx) error {
	store, err := h.storeService.RejectStore(c.Params("id"), middleware.PrincipalFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(store)
}

// HandleDeleteStore removes a store and everything it embeds.
func (h *AdminHandler) HandleDeleteStore(c *fiber.Ctx) error {
	if err := h.storeService.DeleteStore(c.Params("id"), middleware.PrincipalFrom(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "store deleted"})
}
