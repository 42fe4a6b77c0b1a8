package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortColumnWhitelist(t *testing.T) {
	tests := []struct {
		sortBy string
		want   string
	}{
		{"price", "price"},
		{"year", "year"},
		{"mileage", "mileage"},
		{"created_at", "created_at"},
		{"", "created_at"},
		{"price; DROP TABLE listings", "created_at"},
		{"rating", "created_at"},
	}

	for _, tt := range tests {
		t.Run(tt.sortBy, func(t *testing.T) {
			f := ListingFilters{SortBy: tt.sortBy}
			require.Equal(t, tt.want, f.SortColumn())
		})
	}
}

func TestSortClause(t *testing.T) {
	f := ListingFilters{SortBy: "price"}
	require.Equal(t, "price ASC", f.SortClause())

	f.SortDesc = true
	require.Equal(t, "price DESC", f.SortClause())

	f = ListingFilters{SortBy: "bogus", SortDesc: true}
	require.Equal(t, "created_at DESC", f.SortClause())
}
