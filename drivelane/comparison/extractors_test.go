package comparison

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fixYear pins the engine's notion of the current year so age-derived
// scores stay deterministic across test runs.
func fixYear(t *testing.T, year int) {
	t.Helper()
	prev := nowYear
	nowYear = func() int { return year }
	t.Cleanup(func() { nowYear = prev })
}

func TestOwnershipCostTotalEqualsBreakdownSum(t *testing.T) {
	fixYear(t, 2025)

	vehicles := []Vehicle{
		{Price: 20000, Year: 2022, Mileage: 10000, Category: CategorySedan, FuelType: FuelBenzine},
		{Price: 55000, Year: 2024, Mileage: 500, Category: CategoryTruck, FuelType: FuelDiesel},
		{Price: 8000, Year: 2012, Mileage: 140000, Category: CategoryHatchback, FuelType: FuelBenzine},
		{Price: 34000, Year: 2023, Mileage: 4000, Category: CategorySUV, FuelType: FuelElectric},
		{},
	}

	for _, v := range vehicles {
		b := OwnershipCost(v)
		sum := b.Depreciation + b.Insurance + b.Fuel + b.Maintenance + b.Registration
		require.Equal(t, sum, b.Total, "total must equal the sum of its own breakdown")
	}
}

func TestFutureValueNeverExceedsPrice(t *testing.T) {
	fixYear(t, 2025)

	for _, v := range []Vehicle{
		{Price: 20000, Year: 2022, Category: CategorySedan},
		{Price: 20000, Year: 2005, Category: CategorySedan},
		{Price: 0, Year: 2022},
	} {
		fv := FutureValue(v)
		require.LessOrEqual(t, fv, v.Price)
		require.GreaterOrEqual(t, fv, 0.0)
	}
}

func TestScoresStayWithinBounds(t *testing.T) {
	fixYear(t, 2025)

	vehicles := []Vehicle{
		{},
		{Price: 1, Year: 1980, Mileage: 900000, Category: CategoryTruck, FuelType: FuelDiesel},
		{Price: 2000000, Year: 2025, Category: CategoryCoupe, FuelType: FuelElectric,
			Features: []string{"abs", "airbags", "bluetooth", "navigation", "sunroof", "heated_seats", "keyless_entry", "sport_mode", "touchscreen", "climate_control"}},
	}

	for _, v := range vehicles {
		vs := ValueScore(v)
		es := EnvironmentalScore(v)
		require.GreaterOrEqual(t, vs, 0.0)
		require.LessOrEqual(t, vs, 100.0)
		require.GreaterOrEqual(t, es, 0.0)
		require.LessOrEqual(t, es, 100.0)
	}
}

func TestExtractorsTolerateMissingFields(t *testing.T) {
	fixYear(t, 2025)

	// A zero record must not panic and must produce defaults, not errors.
	var v Vehicle
	require.Equal(t, 0, FeatureCount(v))
	require.Equal(t, 0, CategoryFeatureCount(v, FeatureSafety))
	require.Equal(t, 0.0, FutureValue(v))

	b := OwnershipCost(v)
	require.Equal(t, 0.0, b.Depreciation)
	require.Greater(t, b.Insurance, 0.0, "unknown category falls back to the default insurance table entry")
	require.Greater(t, b.Fuel, 0.0, "unknown fuel type falls back to the default fuel table entry")
}

func TestUnknownFeatureTagsExcludedFromCategoryCounts(t *testing.T) {
	v := Vehicle{Features: []string{"abs", "hyperdrive", "bluetooth"}}

	require.Equal(t, 3, FeatureCount(v), "unknown tags still count toward the raw total")
	require.Equal(t, 1, CategoryFeatureCount(v, FeatureSafety))
	require.Equal(t, 1, CategoryFeatureCount(v, FeatureTechnology))
	require.Equal(t, 0, CategoryFeatureCount(v, FeatureComfort))
}

func TestValueScorePrefersCheaperNewerBetterEquipped(t *testing.T) {
	fixYear(t, 2025)

	base := Vehicle{Price: 24000, Year: 2022, Category: CategorySedan}

	cheaper := base
	cheaper.Price = 18000
	require.Greater(t, ValueScore(cheaper), ValueScore(base))

	newer := base
	newer.Year = 2024
	require.Greater(t, ValueScore(newer), ValueScore(base))

	equipped := base
	equipped.Features = []string{"abs", "bluetooth", "sunroof"}
	require.Greater(t, ValueScore(equipped), ValueScore(base))
}

func TestEnvironmentalScoreOrdering(t *testing.T) {
	fixYear(t, 2025)

	mk := func(fuel FuelType) Vehicle {
		return Vehicle{Price: 30000, Year: 2023, Category: CategorySedan, FuelType: fuel}
	}

	electric := EnvironmentalScore(mk(FuelElectric))
	hybrid := EnvironmentalScore(mk(FuelHybrid))
	benzine := EnvironmentalScore(mk(FuelBenzine))
	diesel := EnvironmentalScore(mk(FuelDiesel))

	require.Greater(t, electric, hybrid)
	require.Greater(t, hybrid, benzine)
	require.Greater(t, benzine, diesel)
}

func TestOwnershipCostGrowsWithMileage(t *testing.T) {
	fixYear(t, 2025)

	low := Vehicle{Price: 20000, Year: 2021, Mileage: 10000, Category: CategorySedan, FuelType: FuelBenzine}
	high := low
	high.Mileage = 90000

	require.Greater(t, OwnershipCost(high).Total, OwnershipCost(low).Total)
}
