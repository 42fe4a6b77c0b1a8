package migration

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LegacyDealer is a dealer document from the old mongo backend.
type LegacyDealer struct {
	ID       primitive.ObjectID `bson:"_id"`
	Slug     string             `bson:"slug"`
	Name     string             `bson:"name"`
	City     string             `bson:"city"`
	Region   string             `bson:"region"`
	Phone    string             `bson:"phone"`
	Rating   float64            `bson:"rating"`
	Verified bool               `bson:"verified"`
	Created  time.Time          `bson:"created"`
}

// LegacyListing is a listing document from the old mongo backend. The
// old system stored fuel and drivetrain in lowercase shorthand.
type LegacyListing struct {
	ID         primitive.ObjectID `bson:"_id"`
	DealerSlug string             `bson:"dealer"`
	Make       string             `bson:"make"`
	Model      string             `bson:"model"`
	Title      string             `bson:"title"`
	Price      float64            `bson:"price"`
	Year       int                `bson:"year"`
	Mileage    int                `bson:"mileage"`
	Body       string             `bson:"body"`
	Drive      string             `bson:"drive"`
	Fuel       string             `bson:"fuel"`
	Condition  string             `bson:"condition"`
	Features   []string           `bson:"features"`
	Photos     []string           `bson:"photos"`
	City       string             `bson:"city"`
	Region     string             `bson:"region"`
	Sold       bool               `bson:"sold"`
	SoldAt     time.Time          `bson:"sold_at,omitempty"`
	Created    time.Time          `bson:"created"`
}

// TableStats tracks per-table migration progress
type TableStats struct {
	TotalRecords    int64
	MigratedRecords int64
	FailedRecords   int64
	StartTime       time.Time
	EndTime         time.Time
}

// ImportStats tracks overall migration progress
type ImportStats struct {
	Tables    map[string]*TableStats
	StartTime time.Time
	EndTime   time.Time
}
