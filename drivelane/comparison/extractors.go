package comparison

import "math"

// Metric extractors. Each one is pure and total over its domain: missing
// or unknown attributes fall back to the default table entries rather than
// producing an error, and results depend only on the input record and the
// static tables below.

// OwnershipHorizonYears is the projection window for cost of ownership
// and future value.
const OwnershipHorizonYears = 5

// segmentAveragePrice is the reference price per body-style segment used
// by the value score.
var segmentAveragePrice = map[Category]float64{
	CategorySedan:     24000,
	CategorySUV:       32000,
	CategoryCoupe:     30000,
	CategoryHatchback: 19000,
	CategoryTruck:     38000,
	CategoryMinivan:   28000,
}

const defaultSegmentAverage = 25000

// annualInsurance holds yearly insurance cost per segment.
var annualInsurance = map[Category]float64{
	CategorySedan:     1200,
	CategorySUV:       1400,
	CategoryCoupe:     1700,
	CategoryHatchback: 1100,
	CategoryTruck:     1500,
	CategoryMinivan:   1250,
}

const defaultAnnualInsurance = 1300

// annualFuelCost holds yearly energy cost per engine type.
var annualFuelCost = map[FuelType]float64{
	FuelBenzine:  1800,
	FuelDiesel:   1500,
	FuelHybrid:   1000,
	FuelElectric: 600,
}

const defaultAnnualFuelCost = 1600

// annualRegistration holds yearly registration/tax cost per segment.
var annualRegistration = map[Category]float64{
	CategorySedan:     180,
	CategorySUV:       240,
	CategoryCoupe:     210,
	CategoryHatchback: 160,
	CategoryTruck:     280,
	CategoryMinivan:   200,
}

const defaultAnnualRegistration = 200

// environmentalBase is the fuel-type baseline for the environmental score.
var environmentalBase = map[FuelType]float64{
	FuelElectric: 92,
	FuelHybrid:   76,
	FuelBenzine:  45,
	FuelDiesel:   35,
}

const defaultEnvironmentalBase = 40

// emissionPenalty adjusts the environmental score per segment.
var emissionPenalty = map[Category]float64{
	CategoryHatchback: 0,
	CategorySedan:     1,
	CategoryCoupe:     3,
	CategoryMinivan:   4,
	CategorySUV:       6,
	CategoryTruck:     9,
}

// depreciationRate returns the annual depreciation rate for a vehicle of
// the given age. Rates fall with age: fresh vehicles lose value fastest.
func depreciationRate(ageYears int) float64 {
	switch {
	case ageYears <= 1:
		return 0.18
	case ageYears <= 3:
		return 0.14
	case ageYears <= 6:
		return 0.10
	case ageYears <= 10:
		return 0.07
	default:
		return 0.04
	}
}

// maintenanceBase returns the age-dependent part of the yearly
// maintenance cost.
func maintenanceBase(ageYears int) float64 {
	switch {
	case ageYears <= 3:
		return 350
	case ageYears <= 6:
		return 500
	case ageYears <= 10:
		return 700
	default:
		return 900
	}
}

// mileageMaintenanceRate is the per-mile yearly maintenance surcharge.
const mileageMaintenanceRate = 0.012

// ValueScore rates a vehicle 0-100 by blending its price against the
// segment average with its feature count and age.
func ValueScore(v Vehicle) float64 {
	seg := segmentAveragePrice[v.Category]
	if seg == 0 {
		seg = defaultSegmentAverage
	}

	score := 50.0
	if v.Price > 0 {
		score += 30 * clamp((seg-v.Price)/seg, -1, 1)
	}
	score += math.Min(float64(FeatureCount(v))*2, 15)
	score -= math.Min(float64(age(v))*1.5, 15)

	return round2(clamp(score, 0, 100))
}

// EnvironmentalScore rates a vehicle 0-100 from its fuel type, age and
// segment.
func EnvironmentalScore(v Vehicle) float64 {
	base, ok := environmentalBase[v.FuelType]
	if !ok {
		base = defaultEnvironmentalBase
	}

	score := base
	score -= math.Min(float64(age(v))*1.2, 20)
	score -= emissionPenalty[v.Category]

	return round2(clamp(score, 0, 100))
}

// CostBreakdown is the projected cost of ownership over the fixed horizon,
// split by category. Total always equals the sum of the breakdown fields.
type CostBreakdown struct {
	Depreciation float64 `json:"depreciation"`
	Insurance    float64 `json:"insurance"`
	Fuel         float64 `json:"fuel"`
	Maintenance  float64 `json:"maintenance"`
	Registration float64 `json:"registration"`
	Total        float64 `json:"total"`
}

// OwnershipCost projects the total cost of owning the vehicle for the
// next OwnershipHorizonYears.
func OwnershipCost(v Vehicle) CostBreakdown {
	ins := annualInsurance[v.Category]
	if ins == 0 {
		ins = defaultAnnualInsurance
	}
	fuel, ok := annualFuelCost[v.FuelType]
	if !ok {
		fuel = defaultAnnualFuelCost
	}
	reg := annualRegistration[v.Category]
	if reg == 0 {
		reg = defaultAnnualRegistration
	}

	a := age(v)
	maintenance := 0.0
	for i := 0; i < OwnershipHorizonYears; i++ {
		maintenance += maintenanceBase(a+i) + float64(v.Mileage)*mileageMaintenanceRate
	}

	b := CostBreakdown{
		Depreciation: round2(v.Price - FutureValue(v)),
		Insurance:    round2(ins * OwnershipHorizonYears),
		Fuel:         round2(fuel * OwnershipHorizonYears),
		Maintenance:  round2(maintenance),
		Registration: round2(reg * OwnershipHorizonYears),
	}
	b.Total = b.Depreciation + b.Insurance + b.Fuel + b.Maintenance + b.Registration
	return b
}

// FutureValue projects the vehicle's residual value after the ownership
// horizon by walking the depreciation schedule forward from its current age.
func FutureValue(v Vehicle) float64 {
	if v.Price <= 0 {
		return 0
	}
	value := v.Price
	a := age(v)
	for i := 0; i < OwnershipHorizonYears; i++ {
		value *= 1 - depreciationRate(a+i)
	}
	return round2(value)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
