package handlers

import (
	"github.com/drivelane/drivelane/drivelane/analytics"
	"github.com/drivelane/drivelane/drivelane/database"
	dbmodels "github.com/drivelane/drivelane/drivelane/database/models"
	"github.com/drivelane/drivelane/drivelane/database/repositories"
	"github.com/drivelane/drivelane/drivelane/services"
)

// WebApp bundles everything the HTTP handlers need.
type WebApp struct {
	DB *database.DB

	Listings    repositories.ListingRepository
	Dealers     repositories.DealerRepository
	Users       repositories.UserRepository
	Comparisons repositories.ComparisonRepository

	SearchService  *services.SearchService
	CompareService *services.CompareService
	SessionService *services.SessionService
	MediaService   *services.MediaService
	Monitor        *analytics.Monitor

	Version string
}

// photoURLs resolves a listing's stored photo keys to public URLs.
// Returns nil when media storage is not configured.
func (app *WebApp) photoURLs(listing *dbmodels.Listing) []string {
	if app.MediaService == nil || len(listing.PhotoKeys) == 0 {
		return nil
	}
	return app.MediaService.PhotoURLs(listing.PhotoKeys)
}
