package services

import (
	"context"
	"testing"

	"github.com/drivelane/drivelane/drivelane/comparison"
	"github.com/drivelane/drivelane/drivelane/database/models"
	"github.com/drivelane/drivelane/drivelane/database/repositories"
	"github.com/stretchr/testify/require"
)

func compareFixtures() *fakeListings {
	return &fakeListings{byRef: map[string]*models.Listing{
		"a": {
			Ref: "a", Price: 20000, Year: 2022, Mileage: 10000,
			Category: string(comparison.CategorySedan), FuelType: string(comparison.FuelBenzine),
			Condition: string(comparison.ConditionUsed),
			Features:  []string{"abs", "airbags", "bluetooth"},
		},
		"b": {
			Ref: "b", Price: 25000, Year: 2020, Mileage: 40000,
			Category: string(comparison.CategorySedan), FuelType: string(comparison.FuelBenzine),
			Condition: string(comparison.ConditionUsed),
			Features:  []string{"abs"},
		},
	}}
}

func TestCompareServiceResolvesAndCaches(t *testing.T) {
	repo := compareFixtures()
	cache := NewComparisonCache("", "")
	s := NewCompareService(repo, cache)
	ctx := context.Background()

	summary, err := s.Compare(ctx, "a", "b")
	require.NoError(t, err)
	require.NotNil(t, summary)

	cached, ok := cache.Get(ctx, "a", "b")
	require.True(t, ok)
	require.Same(t, summary, cached)

	again, err := s.Compare(ctx, "a", "b")
	require.NoError(t, err)
	require.Same(t, summary, again)
}

func TestCompareServiceSameRef(t *testing.T) {
	s := NewCompareService(compareFixtures(), NewComparisonCache("", ""))

	_, err := s.Compare(context.Background(), "a", "a")
	require.ErrorIs(t, err, ErrSameListing)
}

func TestCompareServiceUnknownRef(t *testing.T) {
	s := NewCompareService(compareFixtures(), NewComparisonCache("", ""))

	_, err := s.Compare(context.Background(), "a", "missing")
	require.Error(t, err)
	require.True(t, repositories.IsNotFound(err))
}

func TestOwnershipCostByRef(t *testing.T) {
	s := NewCompareService(compareFixtures(), NewComparisonCache("", ""))

	breakdown, err := s.OwnershipCost(context.Background(), "a")
	require.NoError(t, err)

	sum := breakdown.Depreciation + breakdown.Insurance + breakdown.Fuel +
		breakdown.Maintenance + breakdown.Registration
	require.Equal(t, sum, breakdown.Total)
}
