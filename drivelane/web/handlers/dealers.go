package handlers

import (
	"github.com/drivelane/drivelane/drivelane/config"
	webmodels "github.com/drivelane/drivelane/drivelane/web/models"
	"github.com/drivelane/drivelane/drivelane/web/utils"
	"github.com/gofiber/fiber/v2"
)

// DealerDetail handles GET /api/dealers/:slug with computed stats.
func DealerDetail(app *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dealer, err := app.Dealers.GetBySlug(c.Context(), c.Params("slug"))
		if err != nil {
			return err
		}

		stats, err := app.Dealers.GetStats(c.Context(), dealer.ID, config.DefaultSoldWindow)
		if err != nil {
			// Stats are computed extras, the profile is still useful
			// without them.
			stats = nil
		}

		detail := webmodels.DealerDetail{
			DealerSummary: webmodels.DealerSummary{
				Slug:     dealer.Slug,
				Name:     dealer.Name,
				City:     dealer.City,
				Rating:   dealer.Rating,
				Verified: dealer.Verified,
			},
			Region: dealer.Region,
			Phone:  dealer.Phone,
			Stats:  stats,
		}
		return utils.SendSuccess(c, detail, "")
	}
}

// DealerListings handles GET /api/dealers/:slug/listings.
func DealerListings(app *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dealer, err := app.Dealers.GetBySlug(c.Context(), c.Params("slug"))
		if err != nil {
			return err
		}

		page, limit, offset := utils.ParsePagination(c)

		listings, total, err := app.Listings.GetActiveByDealer(c.Context(), dealer.ID, offset, limit)
		if err != nil {
			return err
		}

		results := make([]webmodels.ListingSummary, len(listings))
		for i, listing := range listings {
			results[i] = webmodels.NewListingSummary(listing, app.photoURLs(listing))
		}

		pagination := webmodels.NewPaginationInfo(page, limit, int64(total))
		return utils.SendPaginated(c, results, pagination, "")
	}
}
