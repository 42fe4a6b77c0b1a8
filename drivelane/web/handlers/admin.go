package handlers

import (
	"log/slog"
	"time"

	"github.com/drivelane/drivelane/drivelane/web/utils"
	"github.com/gofiber/fiber/v2"
)

// MarkListingSold handles POST /api/admin/listings/:ref/sold, closing
// the listing and recording the sale.
func MarkListingSold(app *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ref := c.Params("ref")

		if err := app.Listings.MarkSold(c.Context(), ref, time.Now()); err != nil {
			return err
		}

		return utils.SendSuccess(c, fiber.Map{"ref": ref, "status": "sold"}, "Listing marked sold")
	}
}

// DeleteListing handles DELETE /api/admin/listings/:ref, removing the
// listing row and its stored photos.
func DeleteListing(app *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ref := c.Params("ref")

		listing, err := app.Listings.GetByRef(c.Context(), ref)
		if err != nil {
			return err
		}

		if err := app.Listings.Delete(c.Context(), ref); err != nil {
			return err
		}

		if app.MediaService != nil {
			if err := app.MediaService.DeleteListingPhotos(c.Context(), listing.PhotoKeys); err != nil {
				// The row is already gone, orphaned photos are logged
				// and cleaned up out of band.
				slog.Warn("Failed to delete listing photos",
					slog.String("type", "sys"),
					slog.String("ref", ref),
					slog.Any("error", err),
				)
			}
		}

		return utils.SendNoContent(c)
	}
}
