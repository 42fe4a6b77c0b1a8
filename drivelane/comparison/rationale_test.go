package comparison

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRationalesPairProsAndCons(t *testing.T) {
	fixYear(t, 2025)

	ra, rb := Rationales(vehicleA(), vehicleB())

	// A is cheaper, newer, lower mileage, better equipped and cheaper to
	// own; every pro on A's side must show up as a con on B's side.
	require.Contains(t, ra.Pros, "Lower price")
	require.Contains(t, rb.Cons, "Higher price")
	require.Contains(t, ra.Pros, "Newer model year")
	require.Contains(t, rb.Cons, "Older model year")
	require.Contains(t, ra.Pros, "Lower mileage")
	require.Contains(t, ra.Pros, "More safety features")
	require.Contains(t, ra.Pros, "Lower projected ownership cost")
	require.Len(t, rb.Cons, len(ra.Pros))
	require.Len(t, ra.Cons, len(rb.Pros))
}

func TestRationalesSkipEqualAttributes(t *testing.T) {
	fixYear(t, 2025)

	a := vehicleA()
	b := vehicleA()
	// An unknown tag bumps the raw feature count without touching any
	// category count, cost or score, so exactly one rule fires.
	b.Features = append(append([]string{}, a.Features...), "roof_box")

	ra, rb := Rationales(a, b)

	require.Equal(t, []string{"More features overall"}, rb.Pros)
	require.Equal(t, []string{"Fewer features overall"}, ra.Cons)
	require.Empty(t, ra.Pros)
	require.Empty(t, rb.Cons)
}

func TestUseCaseClassifier(t *testing.T) {
	fixYear(t, 2025)

	tests := []struct {
		name    string
		vehicle Vehicle
		want    []string
		exclude []string
	}{
		{
			name:    "hatchback is urban",
			vehicle: Vehicle{Price: 19000, Year: 2023, Category: CategoryHatchback, FuelType: FuelBenzine},
			want:    []string{UseCaseUrban},
		},
		{
			name:    "hybrid sedan is urban and long distance",
			vehicle: Vehicle{Price: 26000, Year: 2023, Category: CategorySedan, FuelType: FuelHybrid},
			want:    []string{UseCaseUrban, UseCaseLongDistance},
		},
		{
			name:    "four by four is off-road",
			vehicle: Vehicle{Price: 40000, Year: 2022, Category: CategoryTruck, Drivetrain: Drivetrain4x4, FuelType: FuelDiesel},
			want:    []string{UseCaseOffRoad},
			exclude: []string{UseCaseUrban},
		},
		{
			name:    "awd sedan is not off-road",
			vehicle: Vehicle{Price: 30000, Year: 2022, Category: CategorySedan, Drivetrain: DrivetrainAWD, FuelType: FuelBenzine},
			exclude: []string{UseCaseOffRoad},
		},
		{
			name:    "minivan is for family trips",
			vehicle: Vehicle{Price: 28000, Year: 2023, Category: CategoryMinivan, FuelType: FuelBenzine},
			want:    []string{UseCaseFamily},
		},
		{
			name: "safe suv is for family trips",
			vehicle: Vehicle{Price: 33000, Year: 2023, Category: CategorySUV, FuelType: FuelBenzine,
				Features: []string{"abs", "airbags"}},
			want: []string{UseCaseFamily},
		},
		{
			name: "comfort loadout is for commuting",
			vehicle: Vehicle{Price: 27000, Year: 2023, Category: CategorySedan, FuelType: FuelBenzine,
				Features: []string{"heated_seats", "leather_seats", "climate_control"}},
			want: []string{UseCaseCommuting},
		},
		{
			name: "tech loadout is for tech enthusiasts",
			vehicle: Vehicle{Price: 27000, Year: 2023, Category: CategorySedan, FuelType: FuelBenzine,
				Features: []string{"navigation", "touchscreen", "apple_carplay"}},
			want: []string{UseCaseTech},
		},
		{
			name:    "cheap car is for budget buyers",
			vehicle: Vehicle{Price: 9000, Year: 2015, Mileage: 90000, Category: CategoryHatchback, FuelType: FuelBenzine},
			want:    []string{UseCaseBudget},
		},
		{
			name:    "adaptive cruise marks long distance",
			vehicle: Vehicle{Price: 30000, Year: 2023, Category: CategorySedan, FuelType: FuelBenzine, Features: []string{"adaptive_cruise"}},
			want:    []string{UseCaseLongDistance},
		},
		{
			name:    "labels can be empty",
			vehicle: Vehicle{Price: 45000, Year: 2018, Mileage: 60000, Category: CategoryCoupe, Drivetrain: DrivetrainRWD, FuelType: FuelBenzine},
			exclude: []string{UseCaseUrban, UseCaseOffRoad, UseCaseFamily, UseCaseBudget},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UseCases(tt.vehicle)
			for _, label := range tt.want {
				require.Contains(t, got, label)
			}
			for _, label := range tt.exclude {
				require.NotContains(t, got, label)
			}
		})
	}
}

func TestUseCasesAreNonExclusive(t *testing.T) {
	fixYear(t, 2025)

	v := Vehicle{
		Price:      13000,
		Year:       2021,
		Category:   CategoryHatchback,
		Drivetrain: DrivetrainFWD,
		FuelType:   FuelHybrid,
		Features:   []string{"navigation", "touchscreen", "apple_carplay", "heated_seats", "leather_seats", "climate_control"},
	}

	got := UseCases(v)
	require.Contains(t, got, UseCaseUrban)
	require.Contains(t, got, UseCaseCommuting)
	require.Contains(t, got, UseCaseTech)
	require.Contains(t, got, UseCaseBudget)
	require.Contains(t, got, UseCaseLongDistance)
}
