package models

import (
	"time"

	"github.com/drivelane/drivelane/drivelane/comparison"
	dbmodels "github.com/drivelane/drivelane/drivelane/database/models"
)

// ListingSummary is the compact listing shape used in search results.
type ListingSummary struct {
	Ref       string   `json:"ref"`
	Title     string   `json:"title"`
	Make      string   `json:"make"`
	Model     string   `json:"model"`
	Price     float64  `json:"price"`
	Year      int      `json:"year"`
	Mileage   int      `json:"mileage"`
	Category  string   `json:"category"`
	FuelType  string   `json:"fuel_type"`
	Condition string   `json:"condition"`
	City      string   `json:"city"`
	PhotoURLs []string `json:"photo_urls,omitempty"`
}

// ListingDetail is the full listing shape with computed metrics.
type ListingDetail struct {
	ListingSummary
	Drivetrain string             `json:"drivetrain"`
	Region     string             `json:"region"`
	Features   []string           `json:"features"`
	Status     string             `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
	Dealer     *DealerSummary     `json:"dealer,omitempty"`
	Metrics    comparison.Metrics `json:"metrics"`
	UseCases   []string           `json:"use_cases"`
}

// DealerSummary is the compact dealer shape embedded in listings.
type DealerSummary struct {
	Slug     string  `json:"slug"`
	Name     string  `json:"name"`
	City     string  `json:"city"`
	Rating   float64 `json:"rating"`
	Verified bool    `json:"verified"`
}

// DealerDetail is the dealer profile with computed stats.
type DealerDetail struct {
	DealerSummary
	Region string                `json:"region"`
	Phone  string                `json:"phone"`
	Stats  *dbmodels.DealerStats `json:"stats,omitempty"`
}

// CompareRequest is the POST /api/compare body.
type CompareRequest struct {
	FirstRef  string `json:"first_ref"`
	SecondRef string `json:"second_ref"`
}

// LoginRequest is the POST /api/auth/login body.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// SessionResponse is returned after a successful login.
type SessionResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SavedComparisonView is one saved comparison in list responses.
type SavedComparisonView struct {
	Ref       string              `json:"ref"`
	FirstRef  string              `json:"first_ref"`
	SecondRef string              `json:"second_ref"`
	Summary   *comparison.Summary `json:"summary,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

// NewListingSummary converts a listing row to its API shape. photoURLs
// may be nil when media storage is not configured.
func NewListingSummary(l *dbmodels.Listing, photoURLs []string) ListingSummary {
	return ListingSummary{
		Ref:       l.Ref,
		Title:     l.Title,
		Make:      l.Make,
		Model:     l.Model,
		Price:     l.Price,
		Year:      l.Year,
		Mileage:   l.Mileage,
		Category:  l.Category,
		FuelType:  l.FuelType,
		Condition: l.Condition,
		City:      l.City,
		PhotoURLs: photoURLs,
	}
}

// NewListingDetail converts a listing row plus computed metrics to the
// detail API shape.
func NewListingDetail(l *dbmodels.Listing, dealer *dbmodels.Dealer, photoURLs []string) ListingDetail {
	vehicle := l.Vehicle()

	detail := ListingDetail{
		ListingSummary: NewListingSummary(l, photoURLs),
		Drivetrain:     l.Drivetrain,
		Region:         l.Region,
		Features:       l.Features,
		Status:         string(l.Status),
		CreatedAt:      l.CreatedAt,
		Metrics:        comparison.ExtractMetrics(vehicle),
		UseCases:       comparison.UseCases(vehicle),
	}

	if dealer != nil {
		detail.Dealer = &DealerSummary{
			Slug:     dealer.Slug,
			Name:     dealer.Name,
			City:     dealer.City,
			Rating:   dealer.Rating,
			Verified: dealer.Verified,
		}
	}

	return detail
}
