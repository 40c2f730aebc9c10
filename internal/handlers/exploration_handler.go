package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"portales/internal/helpers"
	"portales/internal/middleware"
	"portales/internal/services"
)

// ExplorationHandler handles HTTP requests for AR scan history.
type ExplorationHandler struct {
	service *services.ExplorationService
	auth    *middleware.Auth
	logger  *zap.Logger
}

// NewExplorationHandler creates a new ExplorationHandler.
func NewExplorationHandler(service *services.ExplorationService, auth *middleware.Auth, logger *zap.Logger) *ExplorationHandler {
	return &ExplorationHandler{service: service, auth: auth, logger: logger}
}

// RegisterRoutes registers the exploration routes with the Fiber app.
// Everything here is owner-scoped, so the whole group is guarded.
func (h *ExplorationHandler) RegisterRoutes(router fiber.Router) {
	explorations := router.Group("/explorations", h.auth.Required())
	explorations.Get("/", h.HandleListExplorations)
	explorations.Post("/", h.HandleCreateExploration)
	explorations.Get("/:id", h.HandleGetExploration)
	explorations.Delete("/:id", h.HandleDeleteExploration)
}

// HandleListExplorations returns a page of the caller's scan history.
func (h *ExplorationHandler) HandleListExplorations(c *fiber.Ctx) error {
	page, perPage := pageParams(c)
	result, err := h.service.ListExplorations(middleware.UserID(c), page, perPage)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusOK, result, "")
}

// HandleCreateExploration logs a scan event for the caller.
func (h *ExplorationHandler) HandleCreateExploration(c *fiber.Ctx) error {
	data := map[string]interface{}{}
	if err := c.BodyParser(&data); err != nil {
		return badBodyError(c)
	}
	if missing := helpers.ValidateRequiredFields(data, []string{"scan_image_url"}); len(missing) > 0 {
		return missingFieldsError(c, missing)
	}

	result, err := h.service.CreateExploration(middleware.UserID(c), data)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusCreated, result, "Exploration logged successfully")
}

// HandleGetExploration returns one of the caller's scan records.
func (h *ExplorationHandler) HandleGetExploration(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	result, err := h.service.GetExploration(middleware.UserID(c), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusOK, result, "")
}

// HandleDeleteExploration removes one of the caller's scan records.
func (h *ExplorationHandler) HandleDeleteExploration(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	if err := h.service.DeleteExploration(middleware.UserID(c), id); err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusOK, nil, "Exploration deleted successfully")
}
