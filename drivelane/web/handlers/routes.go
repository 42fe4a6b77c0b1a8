package handlers

import (
	"log/slog"

	"github.com/drivelane/drivelane/drivelane/web/middleware"
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes wires every API endpoint onto the fiber app.
func SetupRoutes(app *fiber.App, webApp *WebApp) {
	app.Get("/api/health", HealthCheck(webApp))

	auth := app.Group("/api/auth")
	auth.Post("/login", middleware.AuthRateLimit(), Login(webApp))
	auth.Post("/logout", Logout(webApp))

	api := app.Group("/api", middleware.APIRateLimit())

	listings := api.Group("/listings")
	listings.Get("/", ListingsSearch(webApp))
	listings.Get("/suggest", ListingsSuggest(webApp))
	listings.Get("/:ref", ListingDetail(webApp))
	listings.Get("/:ref/ownership-cost", ListingOwnershipCost(webApp))

	api.Post("/compare", Compare(webApp))

	dealers := api.Group("/dealers")
	dealers.Get("/:slug", DealerDetail(webApp))
	dealers.Get("/:slug/listings", DealerListings(webApp))

	market := api.Group("/analytics")
	market.Get("/market", MarketOverview(webApp))
	market.Get("/market/:category", MarketHistory(webApp))

	me := api.Group("/me", middleware.AuthRequired(webApp.SessionService))
	me.Get("/comparisons", ListComparisons(webApp))
	me.Post("/comparisons", SaveComparison(webApp))
	me.Delete("/comparisons/:ref", DeleteComparison(webApp))

	admin := api.Group("/admin",
		middleware.AuthRequired(webApp.SessionService),
		middleware.AdminRequired(),
	)
	admin.Post("/listings/:ref/sold", MarkListingSold(webApp))
	admin.Delete("/listings/:ref", DeleteListing(webApp))

	app.Use(func(c *fiber.Ctx) error {
		slog.Warn("No route matched for request",
			slog.String("type", "req"),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
		)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested endpoint does not exist",
		})
	})
}
