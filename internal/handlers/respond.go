package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"portales/internal/helpers"
	"portales/internal/services"
)

// respondError maps a service error onto the error envelope. Anything
// outside the known taxonomy is logged and reported as a generic internal
// error so store details never reach the client.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return helpers.Error(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, services.ErrDuplicate):
		return helpers.Error(c, fiber.StatusConflict, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, services.ErrNotFound):
		return helpers.Error(c, fiber.StatusNotFound, "RESOURCE_NOT_FOUND", err.Error(), nil)
	case errors.Is(err, services.ErrForbidden):
		return helpers.Error(c, fiber.StatusForbidden, "AUTHORIZATION_ERROR", err.Error(), nil)
	default:
		logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return helpers.Error(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred", nil)
	}
}

// badBodyError writes the envelope for a missing or malformed JSON body.
func badBodyError(c *fiber.Ctx) error {
	return helpers.Error(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "request body must be a JSON object", nil)
}

// missingFieldsError writes the missing-field error envelope.
func missingFieldsError(c *fiber.Ctx, missing []string) error {
	return helpers.Error(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "missing required fields", fiber.Map{
		"missing_fields": missing,
	})
}

// pageParams reads the shared pagination query parameters.
func pageParams(c *fiber.Ctx) (int, int) {
	return c.QueryInt("page", 1), c.QueryInt("per_page", 20)
}

// pathID parses the numeric :id path segment. A non-numeric id behaves
// like a missing resource.
func pathID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w", services.ErrNotFound)
	}
	return uint(id), nil
}
