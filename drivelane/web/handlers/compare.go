package handlers

import (
	webmodels "github.com/drivelane/drivelane/drivelane/web/models"
	"github.com/drivelane/drivelane/drivelane/web/utils"
	"github.com/gofiber/fiber/v2"
)

// Compare handles POST /api/compare, scoring two listings.
func Compare(app *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.CompareRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}
		if req.FirstRef == "" || req.SecondRef == "" {
			return utils.SendBadRequest(c, "Both first_ref and second_ref are required", nil)
		}

		summary, err := app.CompareService.Compare(c.Context(), req.FirstRef, req.SecondRef)
		if err != nil {
			return err
		}

		return utils.SendSuccess(c, summary, "")
	}
}
