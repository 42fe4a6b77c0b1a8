package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Dealer is a dealership profile.
type Dealer struct {
	bun.BaseModel `bun:"table:dealers,alias:d"`

	ID       int64   `bun:"id,pk,autoincrement"`
	Slug     string  `bun:"slug,notnull,unique"`
	Name     string  `bun:"name,notnull"`
	City     string  `bun:"city"`
	Region   string  `bun:"region"`
	Phone    string  `bun:"phone"`
	Rating   float64 `bun:"rating,notnull,default:0"`
	Verified bool    `bun:"verified,notnull,default:false"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// DealerStats summarizes a dealership's current inventory and sales.
// Computed on read, never stored.
type DealerStats struct {
	ActiveListings int     `json:"active_listings"`
	SoldLast30d    int     `json:"sold_last_30d"`
	AvgPrice       float64 `json:"avg_price"`
	AvgDaysToSale  float64 `json:"avg_days_to_sale"`
}
