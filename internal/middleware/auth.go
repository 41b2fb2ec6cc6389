// Package middleware provides the Fiber middleware chain: JWT auth,
// request logging and Prometheus instrumentation.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/yuetlam/splitter/internal/auth"
)

const (
	// UserIDKey is the Locals key for the authenticated user ID.
	UserIDKey = "user_id"
	// EmailKey is the Locals key for the authenticated user's email.
	EmailKey = "email"
)

// UserID extracts the authenticated user ID from the request context.
// Returns empty string if not set.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}

// RequireAuth validates the Bearer token and stores the user identity in
// request locals. Requests without a valid token get 401.
func RequireAuth(jwtManager *auth.JWTManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return fiber.NewError(fiber.StatusUnauthorized, auth.ErrMissingToken.Error())
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, auth.ErrInvalidToken.Error())
		}

		claims, err := jwtManager.Validate(parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, auth.ErrInvalidToken.Error())
		}

		c.Locals(UserIDKey, claims.UserID)
		c.Locals(EmailKey, claims.Email)
		return c.Next()
	}
}
