package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"portales/internal/helpers"
	"portales/internal/middleware"
	"portales/internal/services"
)

// UserHandler handles HTTP requests for user profiles and follows.
type UserHandler struct {
	service *services.UserService
	auth    *middleware.Auth
	logger  *zap.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService, auth *middleware.Auth, logger *zap.Logger) *UserHandler {
	return &UserHandler{service: service, auth: auth, logger: logger}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	users := router.Group("/users")
	users.Post("/", h.HandleCreateUser)
	users.Get("/:id", h.HandleGetUser)
	users.Put("/:id", h.auth.Required(), h.HandleUpdateUser)
	users.Post("/:id/follow", h.auth.Required(), h.HandleToggleFollow)
}

// HandleCreateUser registers a profile for an externally authenticated
// identity.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	data := map[string]interface{}{}
	if err := c.BodyParser(&data); err != nil {
		return badBodyError(c)
	}
	if missing := helpers.ValidateRequiredFields(data, []string{"firebase_uid", "name", "email"}); len(missing) > 0 {
		return missingFieldsError(c, missing)
	}

	result, err := h.service.CreateUser(data)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusCreated, result, "User created successfully")
}

// HandleGetUser returns one user's public profile.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	result, err := h.service.GetUser(c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusOK, result, "")
}

// HandleUpdateUser applies a partial update to the caller's own profile.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	data := map[string]interface{}{}
	if err := c.BodyParser(&data); err != nil {
		return badBodyError(c)
	}

	result, err := h.service.UpdateUser(middleware.UserID(c), c.Params("id"), data)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusOK, result, "Profile updated successfully")
}

// HandleToggleFollow follows or unfollows the target user.
func (h *UserHandler) HandleToggleFollow(c *fiber.Ctx) error {
	result, err := h.service.ToggleFollow(middleware.UserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return helpers.Success(c, fiber.StatusOK, result, "")
}
