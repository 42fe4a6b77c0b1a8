package migration

import (
	"testing"
	"time"

	"github.com/drivelane/drivelane/drivelane/comparison"
	"github.com/drivelane/drivelane/drivelane/database/models"
	"github.com/stretchr/testify/require"
)

func TestConvertLegacyEnums(t *testing.T) {
	require.Equal(t, comparison.CategorySUV, convertCategory("Crossover"))
	require.Equal(t, comparison.CategoryTruck, convertCategory("pickup"))
	require.Equal(t, comparison.CategorySedan, convertCategory("unknown body"))

	require.Equal(t, comparison.FuelBenzine, convertFuel("petrol"))
	require.Equal(t, comparison.FuelElectric, convertFuel("EV"))
	require.Equal(t, comparison.FuelBenzine, convertFuel(""))

	require.Equal(t, comparison.Drivetrain4x4, convertDrivetrain("4x4"))
	require.Equal(t, comparison.DrivetrainFWD, convertDrivetrain("front"))
	require.Equal(t, comparison.DrivetrainFWD, convertDrivetrain("hovercraft"))

	require.Equal(t, comparison.ConditionNew, convertCondition(" New "))
	require.Equal(t, comparison.ConditionUsed, convertCondition("used"))
	require.Equal(t, comparison.ConditionUsed, convertCondition(""))
}

func TestConvertListing(t *testing.T) {
	created := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	legacy := LegacyListing{
		DealerSlug: "prime-motors",
		Make:       "Skoda",
		Model:      "Octavia",
		Price:      17000,
		Year:       2019,
		Mileage:    82000,
		Body:       "hatch",
		Drive:      "fwd",
		Fuel:       "diesel",
		Condition:  "used",
		Features:   []string{"abs", "navigation"},
		Photos:     []string{"p1.jpg"},
		Sold:       false,
		Created:    created,
	}

	listing := convertListing(legacy, 7)

	require.NotEmpty(t, listing.Ref)
	require.Equal(t, int64(7), listing.DealerID)
	require.Equal(t, "Skoda Octavia", listing.Title)
	require.Equal(t, string(comparison.CategoryHatchback), listing.Category)
	require.Equal(t, string(comparison.FuelDiesel), listing.FuelType)
	require.Equal(t, models.ListingStatusActive, listing.Status)
	require.Equal(t, created, listing.CreatedAt)
}

func TestConvertListingSold(t *testing.T) {
	legacy := LegacyListing{
		Make: "Mazda", Model: "3", Title: "Mazda 3 Skyactiv",
		Body: "sedan", Sold: true,
	}

	listing := convertListing(legacy, 1)

	require.Equal(t, models.ListingStatusSold, listing.Status)
	require.Equal(t, "Mazda 3 Skyactiv", listing.Title)
	require.False(t, listing.CreatedAt.IsZero())
}
