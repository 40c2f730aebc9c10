package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"portales/internal/helpers"
	"portales/internal/services"
)

// SearchHandler handles HTTP requests for search, suggestions and tags.
type SearchHandler struct {
	service *services.SearchService
	logger  *zap.Logger
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(service *services.SearchService, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{service: service, logger: logger}
}

// RegisterRoutes registers the search routes with the Fiber app.
func (h *SearchHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/search", h.HandleSearch)
	router.Get("/search/suggestions", h.HandleSuggestions)
	router.Get("/tags", h.HandleListTags)
}

// HandleSearch runs a scoped or cross-entity search.
func (h *SearchHandler) HandleSearch(c *fiber.Ctx) error {
	scope := c.Query("type", "all")
	page, perPage := pageParams(c)

	result, err := h.service.Search(c.Query("q"), scope, page, perPage)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusOK, result, "")
}

// HandleSuggestions returns autocomplete candidates for a prefix.
func (h *SearchHandler) HandleSuggestions(c *fiber.Ctx) error {
	result, err := h.service.Suggestions(c.Query("q"), c.QueryInt("limit", 10))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusOK, result, "")
}

// HandleListTags lists tags alphabetically or by popularity.
func (h *SearchHandler) HandleListTags(c *fiber.Ctx) error {
	result, err := h.service.ListTags(c.QueryBool("trending", false), c.QueryInt("limit", 50))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusOK, result, "")
}
