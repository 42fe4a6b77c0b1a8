package handlers

import (
	"strings"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/drivelane/drivelane/drivelane/config"
	dbmodels "github.com/drivelane/drivelane/drivelane/database/models"
	"github.com/drivelane/drivelane/drivelane/database/repositories"
	webmodels "github.com/drivelane/drivelane/drivelane/web/models"
	"github.com/drivelane/drivelane/drivelane/web/utils"
	"github.com/gofiber/fiber/v2"
)

// Login handles POST /api/auth/login. Unknown usernames register a new
// account; known ones just get a fresh session.
func Login(app *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		username := strings.TrimSpace(req.Username)
		if username == "" {
			return utils.SendBadRequest(c, "Username is required", nil)
		}
		if len(username) > config.MaxUsernameLength {
			return utils.SendBadRequest(c, "Username too long", nil)
		}

		user, err := app.Users.GetByUsername(c.Context(), username)
		if err != nil {
			if !repositories.IsNotFound(err) {
				return err
			}
			user = &dbmodels.User{
				Ref:      snowflake.New(time.Now()).String(),
				Username: username,
				Email:    strings.TrimSpace(req.Email),
			}
			if err := app.Users.Create(c.Context(), user); err != nil {
				return err
			}
		}

		token, err := app.SessionService.Issue(c.Context(), user)
		if err != nil {
			return err
		}

		_ = app.Users.UpdateLastSeen(c.Context(), user.ID)

		return utils.SendSuccess(c, webmodels.SessionResponse{
			Token:     token,
			Username:  user.Username,
			ExpiresAt: time.Now().Add(config.SessionTTL),
		}, "")
	}
}

// Logout handles POST /api/auth/logout, revoking the presented token.
func Logout(app *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			return utils.SendUnauthorized(c, "No session token presented")
		}

		if err := app.SessionService.Revoke(c.Context(), strings.TrimSpace(header[len(prefix):])); err != nil {
			return utils.SendUnauthorized(c, "Invalid session token")
		}

		return utils.SendNoContent(c)
	}
}
