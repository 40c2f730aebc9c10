package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"portales/internal/helpers"
	"portales/internal/middleware"
	"portales/internal/services"
)

// CategoryHandler handles HTTP requests for the category taxonomy.
type CategoryHandler struct {
	service *services.CategoryService
	auth    *middleware.Auth
	logger  *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService, auth *middleware.Auth, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{service: service, auth: auth, logger: logger}
}

// RegisterRoutes registers the category routes with the Fiber app.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categories := router.Group("/categories")
	categories.Get("/", h.HandleListCategories)
	categories.Post("/", h.auth.Required(), h.HandleCreateCategory)
	categories.Get("/:id", h.HandleGetCategory)
	categories.Put("/:id", h.auth.Required(), h.HandleUpdateCategory)
	categories.Delete("/:id", h.auth.Required(), h.HandleDeleteCategory)
}

// HandleListCategories returns all categories with portal counts.
func (h *CategoryHandler) HandleListCategories(c *fiber.Ctx) error {
	result, err := h.service.ListCategories()
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusOK, result, "")
}

// HandleGetCategory returns one category.
func (h *CategoryHandler) HandleGetCategory(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	result, err := h.service.GetCategory(id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusOK, result, "")
}

// HandleCreateCategory creates a category.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	data := map[string]interface{}{}
	if err := c.BodyParser(&data); err != nil {
		return badBodyError(c)
	}
	if missing := helpers.ValidateRequiredFields(data, []string{"name"}); len(missing) > 0 {
		return missingFieldsError(c, missing)
	}

	result, err := h.service.CreateCategory(data)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusCreated, result, "Category created successfully")
}

// HandleUpdateCategory applies a partial update to a category.
func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	data := map[string]interface{}{}
	if err := c.BodyParser(&data); err != nil {
		return badBodyError(c)
	}

	result, err := h.service.UpdateCategory(id, data)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusOK, result, "Category updated successfully")
}

// HandleDeleteCategory removes a category no portal references.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	if err := h.service.DeleteCategory(id); err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusOK, nil, "Category deleted successfully")
}
