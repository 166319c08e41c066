package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/toykart/storefront/internal/service"
)

// Locals keys set by RequireAuth.
const (
	localUserID    = "user_id"
	localUserEmail = "user_email"
)

// TokenParser validates session tokens.
type TokenParser interface {
	ParseToken(tokenString string) (*service.SessionClaims, error)
}

// AdminChecker reports whether a user may access the back office.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID, email string) (bool, error)
}

// UserID returns the authenticated user's id from the request context.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(localUserID).(string)
	return id
}

// UserEmail returns the authenticated user's email from the request context.
func UserEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(localUserEmail).(string)
	return email
}

// RequireAuth rejects requests without a valid bearer token and stores the
// session identity in the request locals.
func RequireAuth(parser TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}

		claims, err := parser.ParseToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired session"})
		}

		c.Locals(localUserID, claims.Subject)
		c.Locals(localUserEmail, claims.Email)
		return c.Next()
	}
}

// RequireAdmin rejects authenticated requests from users without the admin
// role. Must run after RequireAuth.
func RequireAdmin(auth AdminChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := UserID(c)
		isAdmin, err := auth.IsAdmin(c.Context(), userID, UserEmail(c))
		if err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("admin role check failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		}
		if !isAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin access required"})
		}
		return c.Next()
	}
}
