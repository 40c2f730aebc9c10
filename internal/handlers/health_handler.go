package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"portales/internal/helpers"
)

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	version string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version}
}

// RegisterRoutes registers the health route with the Fiber app.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

// HandleHealth reports service liveness.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return helpers.Success(c, fiber.StatusOK, fiber.Map{
		"status":    "healthy",
		"version":   h.version,
		"timestamp": helpers.FormatTime(time.Now()),
	}, "")
}
