package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"pazar/internal/apperrors"
)

// writeError maps a service error to its HTTP status. Internal failures are
// logged and masked; everything else carries its message to the caller.
func writeError(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
		return c.Status(status).JSON(fiber.Map{"message": "internal server error"})
	}
	payload := fiber.Map{"message": err.Error()}
	if field := apperrors.FieldOf(err); field != "" {
		payload["field"] = field
	}
	return c.Status(status).JSON(payload)
}

// writeValidationError reports validator failures field by field.
func writeValidationError(c *fiber.Ctx, errs map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errs,
	})
}
