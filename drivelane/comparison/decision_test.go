package comparison

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func vehicleA() Vehicle {
	return Vehicle{
		Price:      20000,
		Year:       2022,
		Mileage:    10000,
		Category:   CategorySedan,
		Drivetrain: DrivetrainFWD,
		FuelType:   FuelBenzine,
		Condition:  ConditionUsed,
		Features:   []string{"abs", "airbags", "bluetooth", "heated_seats", "keyless_entry"},
	}
}

func vehicleB() Vehicle {
	return Vehicle{
		Price:      25000,
		Year:       2020,
		Mileage:    40000,
		Category:   CategorySedan,
		Drivetrain: DrivetrainFWD,
		FuelType:   FuelBenzine,
		Condition:  ConditionUsed,
		Features:   []string{"abs", "navigation", "sunroof"},
	}
}

func TestDecideFullSweep(t *testing.T) {
	fixYear(t, 2025)

	d := Decide(vehicleA(), vehicleB())

	require.Equal(t, PickFirst, d.Recommended)
	require.Equal(t, 100, d.TotalFirst, "A wins price, value, cost, features and safety")
	require.Equal(t, 0, d.TotalSecond)
	require.GreaterOrEqual(t, d.Gap, 75)
	require.Equal(t, ConfidenceHigh, d.Confidence)
}

func TestDecideAwardsAreMutuallyExclusive(t *testing.T) {
	fixYear(t, 2025)

	pairs := [][2]Vehicle{
		{vehicleA(), vehicleB()},
		{vehicleB(), vehicleA()},
		{vehicleA(), vehicleA()},
		{
			{Price: 30000, Year: 2024, Mileage: 2000, Category: CategorySUV, FuelType: FuelHybrid, Features: []string{"abs"}},
			{Price: 14000, Year: 2017, Mileage: 88000, Category: CategoryHatchback, FuelType: FuelBenzine, Features: []string{"abs", "airbags", "bluetooth"}},
		},
	}

	for _, pair := range pairs {
		d := Decide(pair[0], pair[1])

		require.LessOrEqual(t, d.TotalFirst, 100)
		require.LessOrEqual(t, d.TotalSecond, 100)
		require.LessOrEqual(t, d.TotalFirst+d.TotalSecond, 100)

		weights := 0
		for _, c := range d.Categories {
			weights += c.Weight
			// A category awards its weight to at most one side.
			require.Contains(t, []Pick{PickNone, PickFirst, PickSecond}, c.Winner)
		}
		require.Equal(t, 100, weights)
	}
}

func TestDecideIsSymmetricUnderSwap(t *testing.T) {
	fixYear(t, 2025)

	forward := Decide(vehicleA(), vehicleB())
	reversed := Decide(vehicleB(), vehicleA())

	require.Equal(t, PickFirst, forward.Recommended)
	require.Equal(t, PickSecond, reversed.Recommended)
	require.Equal(t, forward.Gap, reversed.Gap)
	require.Equal(t, forward.Confidence, reversed.Confidence)
	require.Equal(t, forward.TotalFirst, reversed.TotalSecond)
	require.Equal(t, forward.TotalSecond, reversed.TotalFirst)
}

func TestDecideIdenticalVehiclesTie(t *testing.T) {
	fixYear(t, 2025)

	v := vehicleA()
	d := Decide(v, v)

	require.Equal(t, PickNone, d.Recommended)
	require.Equal(t, 0, d.TotalFirst)
	require.Equal(t, 0, d.TotalSecond)
	require.Equal(t, 0, d.Gap)
	require.Empty(t, d.Confidence)

	ra, rb := Rationales(v, v)
	require.Empty(t, ra.Pros)
	require.Empty(t, ra.Cons)
	require.Empty(t, rb.Pros)
	require.Empty(t, rb.Cons)
}

func TestConfidenceThresholds(t *testing.T) {
	tests := []struct {
		name string
		gap  int
		want Confidence
	}{
		{"just above high threshold", 35, ConfidenceHigh},
		{"exactly at high threshold", 30, ConfidenceModerate},
		{"between thresholds", 20, ConfidenceModerate},
		{"exactly at slight threshold", 15, ConfidenceModerate},
		{"below slight threshold", 10, ConfidenceSlight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, confidenceFor(tt.gap))
		})
	}
}

func TestWeightsSumToOneHundred(t *testing.T) {
	require.Equal(t, 100, WeightPrice+WeightValue+WeightCost+WeightFeatures+WeightSafety)
}

func TestCompareSummaryIsConsistent(t *testing.T) {
	fixYear(t, 2025)

	s := Compare(vehicleA(), vehicleB())

	require.Equal(t, s.Decision, Decide(vehicleA(), vehicleB()))
	require.Equal(t, s.First.Metrics, ExtractMetrics(vehicleA()))
	require.Equal(t, s.Second.Metrics, ExtractMetrics(vehicleB()))
	require.Equal(t, 2, s.First.Metrics.SafetyFeatureCount)
	require.Equal(t, 1, s.Second.Metrics.SafetyFeatureCount)
}
