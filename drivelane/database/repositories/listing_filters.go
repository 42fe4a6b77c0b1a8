package repositories

import "github.com/uptrace/bun"

// ListingFilters defines the available filters for listing searches
type ListingFilters struct {
	Query      string
	Make       string
	Model      string
	Category   string
	FuelType   string
	Drivetrain string
	Condition  string
	City       string
	Region     string
	DealerID   int64

	PriceMin   float64
	PriceMax   float64
	YearMin    int
	YearMax    int
	MileageMax int

	// Feature tags the listing must carry, all of them
	Features []string

	Status string

	SortBy   string
	SortDesc bool
}

// Sortable columns, anything else falls back to created_at
var allowedSortColumns = map[string]string{
	"price":      "price",
	"year":       "year",
	"mileage":    "mileage",
	"created_at": "created_at",
}

// SortColumn maps the requested sort key to a whitelisted column name.
func (f *ListingFilters) SortColumn() string {
	if col, ok := allowedSortColumns[f.SortBy]; ok {
		return col
	}
	return "created_at"
}

// SortClause returns the full ORDER BY expression for the filter.
func (f *ListingFilters) SortClause() string {
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}
	return f.SortColumn() + " " + dir
}

// Apply adds all active filter conditions to the query.
func (f *ListingFilters) Apply(q *bun.SelectQuery) *bun.SelectQuery {
	if f.Query != "" {
		pattern := "%" + f.Query + "%"
		q = q.Where("(LOWER(make) LIKE LOWER(?) OR LOWER(model) LIKE LOWER(?) OR LOWER(title) LIKE LOWER(?))",
			pattern, pattern, pattern)
	}
	if f.Make != "" {
		q = q.Where("LOWER(make) = LOWER(?)", f.Make)
	}
	if f.Model != "" {
		q = q.Where("LOWER(model) = LOWER(?)", f.Model)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.FuelType != "" {
		q = q.Where("fuel_type = ?", f.FuelType)
	}
	if f.Drivetrain != "" {
		q = q.Where("drivetrain = ?", f.Drivetrain)
	}
	if f.Condition != "" {
		q = q.Where("condition = ?", f.Condition)
	}
	if f.City != "" {
		q = q.Where("LOWER(city) = LOWER(?)", f.City)
	}
	if f.Region != "" {
		q = q.Where("LOWER(region) = LOWER(?)", f.Region)
	}
	if f.DealerID != 0 {
		q = q.Where("dealer_id = ?", f.DealerID)
	}
	if f.PriceMin > 0 {
		q = q.Where("price >= ?", f.PriceMin)
	}
	if f.PriceMax > 0 {
		q = q.Where("price <= ?", f.PriceMax)
	}
	if f.YearMin > 0 {
		q = q.Where("year >= ?", f.YearMin)
	}
	if f.YearMax > 0 {
		q = q.Where("year <= ?", f.YearMax)
	}
	if f.MileageMax > 0 {
		q = q.Where("mileage <= ?", f.MileageMax)
	}
	for _, tag := range f.Features {
		q = q.Where("? = ANY(features)", tag)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}
