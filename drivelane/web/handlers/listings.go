package handlers

import (
	"github.com/drivelane/drivelane/drivelane/database/models"
	"github.com/drivelane/drivelane/drivelane/database/repositories"
	webmodels "github.com/drivelane/drivelane/drivelane/web/models"
	"github.com/drivelane/drivelane/drivelane/web/utils"
	"github.com/gofiber/fiber/v2"
)

// ListingsSearch handles GET /api/listings with filter, sort and
// pagination query params.
func ListingsSearch(app *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit, offset := utils.ParsePagination(c)

		filters := repositories.ListingFilters{
			Query:      c.Query("q"),
			Make:       c.Query("make"),
			Model:      c.Query("model"),
			Category:   c.Query("category"),
			FuelType:   c.Query("fuel_type"),
			Drivetrain: c.Query("drivetrain"),
			Condition:  c.Query("condition"),
			City:       c.Query("city"),
			Region:     c.Query("region"),
			PriceMin:   float64(c.QueryInt("price_min", 0)),
			PriceMax:   float64(c.QueryInt("price_max", 0)),
			YearMin:    c.QueryInt("year_min", 0),
			YearMax:    c.QueryInt("year_max", 0),
			MileageMax: c.QueryInt("mileage_max", 0),
			Status:     string(models.ListingStatusActive),
			SortBy:     c.Query("sort", "created_at"),
			SortDesc:   c.QueryBool("desc", true),
		}

		listings, total, err := app.Listings.Search(c.Context(), filters, offset, limit)
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

// ListingDetail handles GET /api/listings/:ref.
func ListingDetail(app *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		listing, err := app.Listings.GetByRef(c.Context(), c.Params("ref"))
		if err != nil {
			return err
		}

		// The dealer row is optional detail, a missing dealer should
		// not fail the listing view.
		dealer, _ := app.Dealers.GetByID(c.Context(), listing.DealerID)

		detail := webmodels.NewListingDetail(listing, dealer, app.photoURLs(listing))
		return utils.SendSuccess(c, detail, "")
	}
}

// ListingsSuggest handles GET /api/listings/suggest?q= typeahead.
func ListingsSuggest(app *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := c.Query("q")
		if query == "" {
			return utils.SendBadRequest(c, "Query parameter q is required", nil)
		}

		suggestions, err := app.SearchService.Suggest(c.Context(), query, c.QueryInt("limit", 0))
		if err != nil {
			return err
		}

		return utils.SendSuccess(c, suggestions, "")
	}
}

// ListingOwnershipCost handles GET /api/listings/:ref/ownership-cost.
func ListingOwnershipCost(app *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		breakdown, err := app.CompareService.OwnershipCost(c.Context(), c.Params("ref"))
		if err != nil {
			return err
		}

		return utils.SendSuccess(c, breakdown, "")
	}
}
