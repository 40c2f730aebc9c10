package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"portales/internal/helpers"
	"portales/internal/services"
)

// userIDKey is the request-local slot holding the verified identity.
const userIDKey = "user_id"

// Auth guards routes with bearer token verification. Every protected
// handler receives the identity through the request locals rather than
// resolving it itself.
type Auth struct {
	verifier services.TokenVerifier
}

// NewAuth creates an Auth guard backed by the given verifier.
func NewAuth(verifier services.TokenVerifier) *Auth {
	return &Auth{verifier: verifier}
}

// Required rejects requests without a valid bearer token.
func (a *Auth) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c)
		if err != nil {
			return helpers.Error(c, fiber.StatusUnauthorized, "AUTHENTICATION_ERROR", err.Error(), nil)
		}

		userID, err := a.verifier.Verify(token)
		if err != nil {
			return helpers.Error(c, fiber.StatusUnauthorized, "AUTHENTICATION_ERROR", "invalid or expired token", nil)
		}

		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// Optional resolves the identity when a valid token is present and lets
// anonymous requests through.
func (a *Auth) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c)
		if err == nil {
			if userID, verifyErr := a.verifier.Verify(token); verifyErr == nil {
				c.Locals(userIDKey, userID)
			}
		}
		return c.Next()
	}
}

// UserID returns the verified identity set by the guard, or the empty
// string for anonymous requests.
func UserID(c *fiber.Ctx) string {
	if id, ok := c.Locals(userIDKey).(string); ok {
		return id
	}
	return ""
}

func bearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get("Authorization")
	if header == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "authorization header is required")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "authorization header must be 'Bearer <token>'")
	}
	return parts[1], nil
}
