package comparison

import "time"

// Category is the body style of a vehicle.
type Category string

const (
	CategorySedan     Category = "Sedan"
	CategorySUV       Category = "SUV"
	CategoryCoupe     Category = "Coupe"
	CategoryHatchback Category = "Hatchback"
	CategoryTruck     Category = "Truck"
	CategoryMinivan   Category = "Minivan"
)

// Drivetrain is the driven-wheel configuration of a vehicle.
type Drivetrain string

const (
	DrivetrainFWD Drivetrain = "FWD"
	DrivetrainRWD Drivetrain = "RWD"
	DrivetrainAWD Drivetrain = "AWD"
	Drivetrain4WD Drivetrain = "4WD"
	Drivetrain4x4 Drivetrain = "4x4"
)

// FuelType is the engine/fuel configuration of a vehicle.
type FuelType string

const (
	FuelBenzine  FuelType = "Benzine"
	FuelDiesel   FuelType = "Diesel"
	FuelHybrid   FuelType = "Hybrid"
	FuelElectric FuelType = "Electric"
)

// Condition marks a vehicle as factory-new or used.
type Condition string

const (
	ConditionNew  Condition = "New"
	ConditionUsed Condition = "Used"
)

// Vehicle is the input record for the scoring engine. Records are
// externally sourced and treated as immutable for the duration of a
// comparison; missing optional fields fall back to safe defaults.
type Vehicle struct {
	Price      float64    `json:"price"`
	Year       int        `json:"year"`
	Mileage    int        `json:"mileage"`
	Category   Category   `json:"category"`
	Drivetrain Drivetrain `json:"drivetrain"`
	FuelType   FuelType   `json:"fuel_type"`
	Condition  Condition  `json:"condition"`
	Features   []string   `json:"features"`
}

// nowYear is overridable in tests to keep age-derived scores deterministic.
var nowYear = func() int { return time.Now().Year() }

// age returns the vehicle age in whole years, never negative.
func age(v Vehicle) int {
	if v.Year <= 0 {
		return 0
	}
	a := nowYear() - v.Year
	if a < 0 {
		return 0
	}
	return a
}
