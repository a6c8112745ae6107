package server

import (
	"errors"

	"coverforge/internal/models"

	"github.com/gofiber/fiber/v2"
)

// respondAppError maps the application error taxonomy onto HTTP statuses and
// renders the standard envelope. Unknown errors degrade to 500.
func respondAppError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	if appErr, ok := err.(*models.AppError); ok {
		switch appErr.Code {
		case "VALIDATION_ERROR":
			status = fiber.StatusBadRequest
			if errors.Is(appErr, models.ErrDuplicateEmail) {
				status = fiber.StatusConflict
			}
		case "UNAUTHORIZED":
			status = fiber.StatusUnauthorized
		case "NOT_FOUND":
			status = fiber.StatusNotFound
		case "TOKEN_ERROR":
			status = fiber.StatusBadRequest
		case "NOT_CONFIGURED":
			status = fiber.StatusConflict
		case "PROVIDER_ERROR":
			status = fiber.StatusBadGateway
		}
	}

	return models.RespondWithError(c, status, err)
}
