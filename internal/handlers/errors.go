package handlers

import (
	"errors"

	"katalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// respondError maps service error kinds onto HTTP status codes with the
// standard message/error envelope. Unrecognized errors are reported as
// internal failures.
func respondError(c *fiber.Ctx, message string, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		status = fiber.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrInvalidInput):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrUpstream):
		status = fiber.StatusBadGateway
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// validationErrorResponse formats validator.ValidationErrors the way the
// auth endpoints always have.
func validationErrorResponse(c *fiber.Ctx, errorMessages map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
