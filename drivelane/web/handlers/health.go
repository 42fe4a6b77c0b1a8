package handlers

import (
	"github.com/drivelane/drivelane/drivelane/web/models"
	"github.com/drivelane/drivelane/drivelane/web/utils"
	"github.com/gofiber/fiber/v2"
)

// HealthCheck reports server and dependency health.
func HealthCheck(app *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		health := models.NewHealthCheck(app.Version)

		if err := app.DB.Ping(c.Context()); err != nil {
			health.AddComponent("database", "unhealthy", err.Error())
		} else {
			health.AddComponent("database", "healthy", "")
		}

		status := fiber.StatusOK
		if health.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return utils.SendJSON(c, status, health)
	}
}
