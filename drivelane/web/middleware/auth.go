package middleware

import (
	"log/slog"
	"strings"

	"github.com/drivelane/drivelane/drivelane/services"
	"github.com/drivelane/drivelane/drivelane/web/utils"
	"github.com/gofiber/fiber/v2"
)

// bearerToken extracts the token from an Authorization header.
func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// AuthRequired ensures the request carries a valid session token and
// stores the resolved user in the request context.
func AuthRequired(sessions *services.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		session, err := sessions.Resolve(c.Context(), token)
		if err != nil {
			slog.Debug("Auth required: invalid session",
				slog.String("type", "req"),
				slog.Any("error", err),
			)
			return utils.SendUnauthorized(c, "Invalid or expired session")
		}

		c.Locals("user", session.User)
		return c.Next()
	}
}

// OptionalAuth resolves the session when one is presented but lets
// anonymous requests through.
func OptionalAuth(sessions *services.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token != "" {
			if session, err := sessions.Resolve(c.Context(), token); err == nil {
				c.Locals("user", session.User)
			}
		}
		return c.Next()
	}
}

// AdminRequired ensures the authenticated user has admin rights. Must
// run after AuthRequired.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := utils.CurrentUser(c)
		if !ok {
			return utils.SendForbidden(c, "Access denied")
		}
		if !user.IsAdmin {
			slog.Warn("Admin required: user lacks admin privileges",
				slog.String("type", "req"),
				slog.String("username", user.Username),
			)
			return utils.SendForbidden(c, "Admin access required")
		}
		return c.Next()
	}
}
