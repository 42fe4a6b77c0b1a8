package models

import (
	"time"

	"github.com/uptrace/bun"
)

// SaleRecord is a closed sale, kept separate from the listing so sold
// listings can be pruned without losing analytics history.
type SaleRecord struct {
	bun.BaseModel `bun:"table:sale_records,alias:sr"`

	ID         int64     `bun:"id,pk,autoincrement"`
	ListingRef string    `bun:"listing_ref,notnull"`
	DealerID   int64     `bun:"dealer_id,notnull"`
	Category   string    `bun:"category,notnull"`
	Price      float64   `bun:"price,notnull"`
	ListedAt   time.Time `bun:"listed_at,notnull"`
	SoldAt     time.Time `bun:"sold_at,notnull"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// DaysToSale returns how long the listing sat on the market.
func (sr *SaleRecord) DaysToSale() float64 {
	return sr.SoldAt.Sub(sr.ListedAt).Hours() / 24
}
