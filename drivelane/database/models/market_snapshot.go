package models

import (
	"time"

	"github.com/uptrace/bun"
)

// MarketSnapshot is one per-category analytics snapshot produced by the
// market monitor.
type MarketSnapshot struct {
	bun.BaseModel `bun:"table:market_snapshots,alias:ms"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Timestamp time.Time `bun:"timestamp,notnull"`
	Category  string    `bun:"category,notnull"`

	ActiveListings int     `bun:"active_listings,notnull"`
	MinPrice       float64 `bun:"min_price,notnull"`
	MedianPrice    float64 `bun:"median_price,notnull"`
	AvgPrice       float64 `bun:"avg_price,notnull"`
	MaxPrice       float64 `bun:"max_price,notnull"`

	// Coefficient of variation of active prices; a dispersion signal
	// for how spread out the segment is.
	PriceDispersion float64 `bun:"price_dispersion,notnull"`

	SalesVolume   int     `bun:"sales_volume,notnull"`
	AvgDaysToSale float64 `bun:"avg_days_to_sale,notnull"`
}
