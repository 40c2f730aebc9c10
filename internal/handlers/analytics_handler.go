package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"portales/internal/helpers"
	"portales/internal/middleware"
	"portales/internal/services"
)

// AnalyticsHandler handles HTTP requests for dashboards, per-entity
// analytics, trending and event ingestion.
type AnalyticsHandler struct {
	service *services.AnalyticsService
	auth    *middleware.Auth
	logger  *zap.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(service *services.AnalyticsService, auth *middleware.Auth, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{service: service, auth: auth, logger: logger}
}

// RegisterRoutes registers the analytics routes with the Fiber app.
func (h *AnalyticsHandler) RegisterRoutes(router fiber.Router) {
	analytics := router.Group("/analytics")
	analytics.Get("/dashboard", h.auth.Required(), h.HandleDashboard)
	analytics.Get("/user/:id", h.auth.Required(), h.HandleUserAnalytics)
	analytics.Get("/portal/:id", h.auth.Required(), h.HandlePortalAnalytics)
	analytics.Get("/trending", h.HandleTrending)
	analytics.Post("/track", h.auth.Optional(), h.HandleTrackEvent)
}

// HandleDashboard returns platform totals and rankings.
func (h *AnalyticsHandler) HandleDashboard(c *fiber.Ctx) error {
	result, err := h.service.Dashboard()
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusOK, result, "")
}

// HandleUserAnalytics returns the caller's own creator analytics.
func (h *AnalyticsHandler) HandleUserAnalytics(c *fiber.Ctx) error {
	result, err := h.service.UserAnalytics(middleware.UserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusOK, result, "")
}

// HandlePortalAnalytics returns engagement numbers for the caller's
// portal.
func (h *AnalyticsHandler) HandlePortalAnalytics(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	result, err := h.service.PortalAnalytics(middleware.UserID(c), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusOK, result, "")
}

// HandleTrending returns the recent portals ranked by likes.
func (h *AnalyticsHandler) HandleTrending(c *fiber.Ctx) error {
	result, err := h.service.Trending(c.QueryInt("days", 7), c.QueryInt("limit", 20))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusOK, result, "")
}

// HandleTrackEvent accepts a client analytics event, anonymous or not.
func (h *AnalyticsHandler) HandleTrackEvent(c *fiber.Ctx) error {
	data := map[string]interface{}{}
	if err := c.BodyParser(&data); err != nil {
		return badBodyError(c)
	}
	if missing := helpers.ValidateRequiredFields(data, []string{"event_type"}); len(missing) > 0 {
		return missingFieldsError(c, missing)
	}

	eventType, _ := data["event_type"].(string)
	h.service.TrackEvent(middleware.UserID(c), eventType, data)
	return helpers.Success(c, fiber.StatusOK, nil, "Event tracked successfully")
}
