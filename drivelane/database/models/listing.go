package models

import (
	"time"

	"github.com/drivelane/drivelane/drivelane/comparison"
	"github.com/uptrace/bun"
)

type ListingStatus string

const (
	ListingStatusActive    ListingStatus = "active"
	ListingStatusPending   ListingStatus = "pending"
	ListingStatusSold      ListingStatus = "sold"
	ListingStatusWithdrawn ListingStatus = "withdrawn"
)

// Listing is a vehicle offered on the marketplace.
type Listing struct {
	bun.BaseModel `bun:"table:listings,alias:l"`

	ID         int64    `bun:"id,pk,autoincrement"`
	Ref        string   `bun:"ref,notnull,unique"`
	DealerID   int64    `bun:"dealer_id,notnull"`
	Make       string   `bun:"make,notnull"`
	Model      string   `bun:"model,notnull"`
	Title      string   `bun:"title,notnull"`
	Price      float64  `bun:"price,notnull"`
	Year       int      `bun:"year,notnull"`
	Mileage    int      `bun:"mileage,notnull"`
	Category   string   `bun:"category,notnull"`
	Drivetrain string   `bun:"drivetrain"`
	FuelType   string   `bun:"fuel_type,notnull"`
	Condition  string   `bun:"condition,notnull"`
	Features   []string `bun:"features,array"`
	PhotoKeys  []string `bun:"photo_keys,array"`
	City       string   `bun:"city"`
	Region     string   `bun:"region"`

	Status ListingStatus `bun:"status,notnull,default:'active'"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Vehicle converts the listing row into the scoring engine's input record.
func (l *Listing) Vehicle() comparison.Vehicle {
	return comparison.Vehicle{
		Price:      l.Price,
		Year:       l.Year,
		Mileage:    l.Mileage,
		Category:   comparison.Category(l.Category),
		Drivetrain: comparison.Drivetrain(l.Drivetrain),
		FuelType:   comparison.FuelType(l.FuelType),
		Condition:  comparison.Condition(l.Condition),
		Features:   l.Features,
	}
}
