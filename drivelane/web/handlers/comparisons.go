package handlers

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/drivelane/drivelane/drivelane/comparison"
	dbmodels "github.com/drivelane/drivelane/drivelane/database/models"
	webmodels "github.com/drivelane/drivelane/drivelane/web/models"
	"github.com/drivelane/drivelane/drivelane/web/utils"
	"github.com/gofiber/fiber/v2"
)

// SaveComparison handles POST /api/me/comparisons, computing and
// storing a comparison under the authenticated user.
func SaveComparison(app *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := utils.CurrentUser(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

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

		payload, err := json.Marshal(summary)
		if err != nil {
			return err
		}

		saved := &dbmodels.SavedComparison{
			Ref:       snowflake.New(time.Now()).String(),
			UserID:    user.ID,
			FirstRef:  req.FirstRef,
			SecondRef: req.SecondRef,
			Summary:   payload,
		}
		if err := app.Comparisons.Save(c.Context(), saved); err != nil {
			return err
		}

		return utils.SendCreated(c, toComparisonView(saved), "Comparison saved")
	}
}

// ListComparisons handles GET /api/me/comparisons.
func ListComparisons(app *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := utils.CurrentUser(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		page, limit, offset := utils.ParsePagination(c)

		saved, total, err := app.Comparisons.GetByUser(c.Context(), user.ID, offset, limit)
		if err != nil {
			return err
		}

		views := make([]webmodels.SavedComparisonView, len(saved))
		for i, s := range saved {
			views[i] = toComparisonView(s)
		}

		pagination := webmodels.NewPaginationInfo(page, limit, int64(total))
		return utils.SendPaginated(c, views, pagination, "")
	}
}

// DeleteComparison handles DELETE /api/me/comparisons/:ref.
func DeleteComparison(app *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := utils.CurrentUser(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		if err := app.Comparisons.Delete(c.Context(), user.ID, c.Params("ref")); err != nil {
			return err
		}

		return utils.SendNoContent(c)
	}
}

func toComparisonView(saved *dbmodels.SavedComparison) webmodels.SavedComparisonView {
	view := webmodels.SavedComparisonView{
		Ref:       saved.Ref,
		FirstRef:  saved.FirstRef,
		SecondRef: saved.SecondRef,
		CreatedAt: saved.CreatedAt,
	}

	var summary comparison.Summary
	if err := json.Unmarshal(saved.Summary, &summary); err != nil {
		slog.Warn("Stored comparison payload is unreadable",
			slog.String("type", "sys"),
			slog.String("ref", saved.Ref),
			slog.Any("error", err),
		)
		return view
	}

	view.Summary = &summary
	return view
}
