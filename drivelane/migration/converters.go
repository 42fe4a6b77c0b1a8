package migration

import (
	"strings"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/drivelane/drivelane/drivelane/comparison"
	"github.com/drivelane/drivelane/drivelane/database/models"
)

var legacyBodyMap = map[string]comparison.Category{
	"sedan":     comparison.CategorySedan,
	"saloon":    comparison.CategorySedan,
	"suv":       comparison.CategorySUV,
	"crossover": comparison.CategorySUV,
	"coupe":     comparison.CategoryCoupe,
	"hatch":     comparison.CategoryHatchback,
	"hatchback": comparison.CategoryHatchback,
	"truck":     comparison.CategoryTruck,
	"pickup":    comparison.CategoryTruck,
	"minivan":   comparison.CategoryMinivan,
	"van":       comparison.CategoryMinivan,
}

var legacyFuelMap = map[string]comparison.FuelType{
	"petrol":   comparison.FuelBenzine,
	"gasoline": comparison.FuelBenzine,
	"benzine":  comparison.FuelBenzine,
	"diesel":   comparison.FuelDiesel,
	"hybrid":   comparison.FuelHybrid,
	"phev":     comparison.FuelHybrid,
	"electric": comparison.FuelElectric,
	"ev":       comparison.FuelElectric,
}

var legacyDriveMap = map[string]comparison.Drivetrain{
	"fwd":   comparison.DrivetrainFWD,
	"front": comparison.DrivetrainFWD,
	"rwd":   comparison.DrivetrainRWD,
	"rear":  comparison.DrivetrainRWD,
	"awd":   comparison.DrivetrainAWD,
	"4wd":   comparison.Drivetrain4WD,
	"4x4":   comparison.Drivetrain4x4,
}

func convertCategory(body string) comparison.Category {
	if cat, ok := legacyBodyMap[strings.ToLower(strings.TrimSpace(body))]; ok {
		return cat
	}
	return comparison.CategorySedan
}

func convertFuel(fuel string) comparison.FuelType {
	if f, ok := legacyFuelMap[strings.ToLower(strings.TrimSpace(fuel))]; ok {
		return f
	}
	return comparison.FuelBenzine
}

func convertDrivetrain(drive string) comparison.Drivetrain {
	if d, ok := legacyDriveMap[strings.ToLower(strings.TrimSpace(drive))]; ok {
		return d
	}
	return comparison.DrivetrainFWD
}

func convertCondition(condition string) comparison.Condition {
	if strings.EqualFold(strings.TrimSpace(condition), "new") {
		return comparison.ConditionNew
	}
	return comparison.ConditionUsed
}

func convertDealer(legacy LegacyDealer) *models.Dealer {
	return &models.Dealer{
		Slug:     strings.ToLower(strings.TrimSpace(legacy.Slug)),
		Name:     legacy.Name,
		City:     legacy.City,
		Region:   legacy.Region,
		Phone:    legacy.Phone,
		Rating:   legacy.Rating,
		Verified: legacy.Verified,
	}
}

func convertListing(legacy LegacyListing, dealerID int64) *models.Listing {
	status := models.ListingStatusActive
	if legacy.Sold {
		status = models.ListingStatusSold
	}

	created := legacy.Created
	if created.IsZero() {
		created = time.Now()
	}

	title := legacy.Title
	if title == "" {
		title = strings.TrimSpace(legacy.Make + " " + legacy.Model)
	}

	return &models.Listing{
		Ref:        snowflake.New(created).String(),
		DealerID:   dealerID,
		Make:       legacy.Make,
		Model:      legacy.Model,
		Title:      title,
		Price:      legacy.Price,
		Year:       legacy.Year,
		Mileage:    legacy.Mileage,
		Category:   string(convertCategory(legacy.Body)),
		Drivetrain: string(convertDrivetrain(legacy.Drive)),
		FuelType:   string(convertFuel(legacy.Fuel)),
		Condition:  string(convertCondition(legacy.Condition)),
		Features:   legacy.Features,
		PhotoKeys:  legacy.Photos,
		City:       legacy.City,
		Region:     legacy.Region,
		Status:     status,
		CreatedAt:  created,
	}
}
