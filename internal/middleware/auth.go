package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"pazar/internal/services"
)

const principalKey = "principal"

// AuthRequired is a Fiber middleware that checks for a valid bearer token of
// any principal kind and stores the typed claims in the request context.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		principal, err := authService.ParseToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// PrincipalFrom returns the claims stored by AuthRequired, or nil.
func PrincipalFrom(c *fiber.Ctx) services.Principal {
	principal, _ := c.Locals(principalKey).(services.Principal)
	return principal
}

// StoreOnly rejects requests whose token is not a store token.
func StoreOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFrom(c).(services.StoreClaims); !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "store account required",
			})
		}
		return c.Next()
	}
}

// CustomerOnly rejects requests whose token is not a customer token.
func CustomerOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFrom(c).(services.CustomerClaims); !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "customer account required",
			})
		}
		return c.Next()
	}
}

// AdminOnly rejects requests whose token is not an admin token.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFrom(c).(services.AdminClaims); !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "admin account required",
			})
		}
		return c.Next()
	}
}
