package handlers

import (
	"github.com/gofiber/fiber/v2"

	"pazar/internal/middleware"
	"pazar/internal/services"
)

// StoreHandler handles public store browsing, the self-service active toggle
// and the store's own profile.
type StoreHandler struct {
	storeService *services.StoreService
}

// NewStoreHandler creates a new StoreHandler.
func NewStoreHandler(storeService *services.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// RegisterRoutes registers the store routes. authGuard protects the routes
// that need any valid token; ownership checks happen in the service.
func (h *StoreHandler) RegisterRoutes(router fiber.Router, authGuard fiber.Handler) {
	router.Get("/stores/approved", h.HandleListApproved)
	router.Get("/stores/:id", h.HandleGetStore)
	router.Post("/stores/:id/toggle", authGuard, h.HandleToggleActive)
	router.Get("/me/store", authGuard, middleware.StoreOnly(), h.HandleGetOwnStore)
}

// HandleListApproved lists stores that passed the visibility gate.
func (h *StoreHandler) HandleListApproved(c *fiber.Ctx) error {
	stores, err := h.storeService.ListPublicStores()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stores)
}

// HandleGetStore returns one store if it is approved and active.
func (h *StoreHandler) HandleGetStore(c *fiber.Ctx) error {
	store, err := h.storeService.GetPublicStore(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(store)
}

// HandleToggleActive flips the store's active flag. Allowed for the owning
// store itself or the admin.
func (h *StoreHandler) HandleToggleActive(c *fiber.Ctx) error {
	active, err := h.storeService.ToggleActive(c.Params("id"), middleware.PrincipalFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"active": active})
}

// HandleGetOwnStore returns the authenticated store's own document.
func (h *StoreHandler) HandleGetOwnStore(c *fiber.Ctx) error {
	store, err := h.storeService.GetOwnStore(middleware.PrincipalFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(store)
}
