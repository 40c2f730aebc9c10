package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"portales/internal/helpers"
	"portales/internal/middleware"
	"portales/internal/services"
)

// ReviewHandler handles HTTP requests for reviews.
type ReviewHandler struct {
	service *services.ReviewService
	auth    *middleware.Auth
	logger  *zap.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService, auth *middleware.Auth, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{service: service, auth: auth, logger: logger}
}

// RegisterRoutes registers the review routes with the Fiber app. Listing
// and creation live under the portal they review.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/portals/:id/reviews", h.HandleListReviews)
	router.Post("/portals/:id/reviews", h.auth.Required(), h.HandleCreateReview)

	reviews := router.Group("/reviews")
	reviews.Put("/:id", h.auth.Required(), h.HandleUpdateReview)
	reviews.Delete("/:id", h.auth.Required(), h.HandleDeleteReview)
}

// HandleListReviews returns a page of a portal's reviews.
func (h *ReviewHandler) HandleListReviews(c *fiber.Ctx) error {
	portalID, err := pathID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	page, perPage := pageParams(c)
	result, err := h.service.ListReviews(portalID, page, perPage)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusOK, result, "")
}

// HandleCreateReview adds the caller's review of the portal.
func (h *ReviewHandler) HandleCreateReview(c *fiber.Ctx) error {
	portalID, err := pathID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	data := map[string]interface{}{}
	if err := c.BodyParser(&data); err != nil {
		return badBodyError(c)
	}
	if missing := helpers.ValidateRequiredFields(data, []string{"rating"}); len(missing) > 0 {
		return missingFieldsError(c, missing)
	}

	result, err := h.service.CreateReview(middleware.UserID(c), portalID, data)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusCreated, result, "Review created successfully")
}

// HandleUpdateReview applies a partial update to the caller's review.
func (h *ReviewHandler) HandleUpdateReview(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	data := map[string]interface{}{}
	if err := c.BodyParser(&data); err != nil {
		return badBodyError(c)
	}

	result, err := h.service.UpdateReview(middleware.UserID(c), id, data)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusOK, result, "Review updated successfully")
}

// HandleDeleteReview removes the caller's review.
func (h *ReviewHandler) HandleDeleteReview(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	if err := h.service.DeleteReview(middleware.UserID(c), id); err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusOK, nil, "Review deleted successfully")
}
