package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"portales/internal/helpers"
	"portales/internal/middleware"
	"portales/internal/repositories"
	"portales/internal/services"
)

// PortalHandler handles HTTP requests for portals, likes and favorites.
type PortalHandler struct {
	service *services.PortalService
	auth    *middleware.Auth
	logger  *zap.Logger
}

// NewPortalHandler creates a new PortalHandler.
func NewPortalHandler(service *services.PortalService, auth *middleware.Auth, logger *zap.Logger) *PortalHandler {
	return &PortalHandler{service: service, auth: auth, logger: logger}
}

// RegisterRoutes registers the portal routes with the Fiber app.
func (h *PortalHandler) RegisterRoutes(router fiber.Router) {
	portals := router.Group("/portals")
	portals.Get("/", h.HandleListPortals)
	portals.Post("/", h.auth.Required(), h.HandleCreatePortal)
	portals.Get("/:id", h.auth.Optional(), h.HandleGetPortal)
	portals.Put("/:id", h.auth.Required(), h.HandleUpdatePortal)
	portals.Delete("/:id", h.auth.Required(), h.HandleDeletePortal)
	portals.Post("/:id/like", h.auth.Required(), h.HandleToggleLike)
	portals.Post("/:id/favorite", h.auth.Required(), h.HandleToggleFavorite)
}

// HandleListPortals returns a filtered page of public portals.
func (h *PortalHandler) HandleListPortals(c *fiber.Ctx) error {
	filters := repositories.PortalFilters{
		CreatorID: c.Query("creator_id"),
		Search:    c.Query("search"),
	}
	if categoryID := c.QueryInt("category_id", 0); categoryID > 0 {
		id := uint(categoryID)
		filters.CategoryID = &id
	}
	if c.Query("featured") != "" {
		featured := c.QueryBool("featured", false)
		filters.Featured = &featured
	}

	page, perPage := pageParams(c)
	result, err := h.service.ListPortals(filters, page, perPage)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusOK, result, "")
}

// HandleGetPortal returns one portal with its stats.
func (h *PortalHandler) HandleGetPortal(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	result, err := h.service.GetPortal(id, middleware.UserID(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusOK, result, "")
}

// HandleCreatePortal creates a portal owned by the caller.
func (h *PortalHandler) HandleCreatePortal(c *fiber.Ctx) error {
	data := map[string]interface{}{}
	if err := c.BodyParser(&data); err != nil {
		return badBodyError(c)
	}
	if missing := helpers.ValidateRequiredFields(data, []string{"title", "image_url"}); len(missing) > 0 {
		return missingFieldsError(c, missing)
	}

	result, err := h.service.CreatePortal(middleware.UserID(c), data)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusCreated, result, "Portal created successfully")
}

// HandleUpdatePortal applies a partial update to the caller's portal.
func (h *PortalHandler) HandleUpdatePortal(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	data := map[string]interface{}{}
	if err := c.BodyParser(&data); err != nil {
		return badBodyError(c)
	}

	result, err := h.service.UpdatePortal(middleware.UserID(c), id, data)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusOK, result, "Portal updated successfully")
}

// HandleDeletePortal removes the caller's portal and its dependents.
func (h *PortalHandler) HandleDeletePortal(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	if err := h.service.DeletePortal(middleware.UserID(c), id); err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusOK, nil, "Portal deleted successfully")
}

// HandleToggleLike likes or unlikes the portal.
func (h *PortalHandler) HandleToggleLike(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	result, err := h.service.ToggleLike(middleware.UserID(c), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusOK, result, "")
}

// HandleToggleFavorite favorites or unfavorites the portal.
func (h *PortalHandler) HandleToggleFavorite(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	result, err := h.service.ToggleFavorite(middleware.UserID(c), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusOK, result, "")
}
