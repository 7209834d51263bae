package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"pazar/internal/services"
)

// AuthHandler handles registration and login for all three principal kinds.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the credential-exchange routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/stores", h.HandleRegisterStore)
	router.Post("/auth/login", h.HandleStoreLogin)
	router.Post("/users/register", h.HandleCustomerRegister)
	router.Post("/users/login", h.HandleCustomerLogin)
	router.Post("/admin/login", h.HandleAdminLogin)
}

// StoreRegisterRequest is the body of a store signup.
type StoreRegisterRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Owner       string `json:"owner" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required"`
	Description string `json:"description"`
	Password    string `json:"password" validate:"required,min=6"`
}

// HandleRegisterStore creates a pending store account. No token is issued;
// the store waits for moderation.
func (h *AuthHandler) HandleRegisterStore(c *fiber.Ctx) error {
	var req StoreRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if errs := h.validateStruct(req); errs != nil {
		return writeValidationError(c, errs)
	}

	store, err := h.authService.RegisterStore(services.StoreRegistration{
		Name:        req.Name,
		Owner:       req.Owner,
		Email:       req.Email,
		Phone:       req.Phone,
		Description: req.Description,
		Password:    req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Store registered, awaiting approval",
		"store":   store,
	})
}

// LoginRequest is the body of a store or customer login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleStoreLogin authenticates a store account.
func (h *AuthHandler) HandleStoreLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if errs := h.validateStruct(req); errs != nil {
		return writeValidationError(c, errs)
	}

	token, store, err := h.authService.LoginStore(req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"token": token, "store": store})
}

// CustomerRegisterRequest is the body of a customer signup.
type CustomerRegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"`
}

// HandleCustomerRegister creates a customer account and logs it in.
func (h *AuthHandler) HandleCustomerRegister(c *fiber.Ctx) error {
	var req CustomerRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if errs := h.validateStruct(req); errs != nil {
		return writeValidationError(c, errs)
	}

	token, user, err := h.authService.RegisterCustomer(req.Name, req.Email, req.Password, req.Phone)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"token": token, "user": user})
}

// HandleCustomerLogin authenticates a customer account.
func (h *AuthHandler) HandleCustomerLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if errs := h.validateStruct(req); errs != nil {
		return writeValidationError(c, errs)
	}

	token, user, err := h.authService.LoginCustomer(req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"token": token, "user": user})
}

// AdminLoginRequest is the body of an admin login.
type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleAdminLogin checks the configured admin credential pair.
func (h *AuthHandler) HandleAdminLogin(c *fiber.Ctx) error {
	var req AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if errs := h.validateStruct(req); errs != nil {
		return writeValidationError(c, errs)
	}

	token, err := h.authService.LoginAdmin(req.Username, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"token": token})
}

func (h *AuthHandler) validateStruct(v interface{}) map[string]string {
	err := h.validate.Struct(v)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"body": err.Error()}
	}
	errs := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		errs[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return errs
}
