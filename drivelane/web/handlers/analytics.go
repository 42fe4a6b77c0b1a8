package handlers

import (
	"time"

	"github.com/drivelane/drivelane/drivelane/web/utils"
	"github.com/gofiber/fiber/v2"
)

// MarketOverview handles GET /api/analytics/market, returning the
// latest per-category snapshot.
func MarketOverview(app *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snapshots, err := app.Monitor.Overview(c.Context())
		if err != nil {
			return err
		}

		return utils.SendSuccess(c, snapshots, "")
	}
}

// MarketHistory handles GET /api/analytics/market/:category with an
// optional days query param (default 30, max 365).
func MarketHistory(app *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		days := c.QueryInt("days", 30)
		if days < 1 {
			days = 30
		}
		if days > 365 {
			days = 365
		}

		since := time.Now().AddDate(0, 0, -days)
		snapshots, err := app.Monitor.History(c.Context(), c.Params("category"), since)
		if err != nil {
			return err
		}

		return utils.SendSuccess(c, snapshots, "")
	}
}
