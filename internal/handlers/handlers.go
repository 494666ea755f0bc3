package handlers

import (
	"fmt"
	"log"

	"storefront/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondError maps a domain error to its HTTP status. Configuration errors
// and anything unclassified surface as a bare 500 with no internal detail.
func respondError(c *fiber.Ctx, err error) error {
	if apperrors.IsExpected(err) {
		return c.Status(apperrors.StatusCode(err)).JSON(fiber.Map{
			"message": err.Error(),
		})
	}
	log.Printf("Internal error handling %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal Server Error",
	})
}

// respondValidation shapes validator errors into a field→reason map.
func respondValidation(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
