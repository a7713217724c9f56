package server

import (
	"errors"

	"quill/internal/models"
	"quill/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// currentUserID returns the authenticated user ID, or "" for anonymous requests.
func currentUserID(c *fiber.Ctx) string {
	if id, ok := c.Locals("userID").(string); ok {
		return id
	}
	return ""
}

// statusForCode maps application error codes to HTTP status codes.
func statusForCode(code string) int {
	switch code {
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeNotFollowing, models.CodeNotFavorited:
		return fiber.StatusUnprocessableEntity
	case models.CodeValidation:
		return fiber.StatusBadRequest
	case models.CodeUnauthorized:
		return fiber.StatusForbidden
	case models.CodePartialWrite:
		return fiber.StatusInternalServerError
	case models.CodeStoreError:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError translates a service error into an HTTP response.
func respondError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		status := statusForCode(appErr.Code)
		if status >= fiber.StatusInternalServerError {
			observability.RecordErrorInContext(c.UserContext(), err)
		}
		return models.RespondWithError(c, status, appErr)
	}
	observability.RecordErrorInContext(c.UserContext(), err)
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}
