package comparison

// Rationale holds the human-readable argument for one side of a
// comparison, plus the qualitative use-case labels assigned to it.
type Rationale struct {
	Pros     []string `json:"pros"`
	Cons     []string `json:"cons"`
	UseCases []string `json:"use_cases"`
}

// Use-case labels assigned by the classifier.
const (
	UseCaseUrban        = "Urban driving"
	UseCaseOffRoad      = "Off-road driving"
	UseCaseFamily       = "Family trips"
	UseCaseCommuting    = "Comfortable commuting"
	UseCaseTech         = "Tech enthusiasts"
	UseCaseBudget       = "Budget-conscious buyers"
	UseCaseLongDistance = "Long distance travel"
)

// attributeRule is one entry in the fixed ordered walk: extract a numeric
// attribute for a side and say which direction is better.
type attributeRule struct {
	pro        string
	con        string
	value      func(Vehicle) float64
	lowerIsPro bool
}

// rationaleRules is walked in order for every comparison. Each rule
// appends a pro to the better side and a con to the other; equal values
// produce no entry for either side.
var rationaleRules = []attributeRule{
	{"Lower price", "Higher price", func(v Vehicle) float64 { return v.Price }, true},
	{"Newer model year", "Older model year", func(v Vehicle) float64 { return float64(v.Year) }, false},
	{"Lower mileage", "Higher mileage", func(v Vehicle) float64 { return float64(v.Mileage) }, true},
	{"More features overall", "Fewer features overall", func(v Vehicle) float64 { return float64(FeatureCount(v)) }, false},
	{"More safety features", "Fewer safety features", func(v Vehicle) float64 { return float64(CategoryFeatureCount(v, FeatureSafety)) }, false},
	{"More comfort features", "Fewer comfort features", func(v Vehicle) float64 { return float64(CategoryFeatureCount(v, FeatureComfort)) }, false},
	{"More technology features", "Fewer technology features", func(v Vehicle) float64 { return float64(CategoryFeatureCount(v, FeatureTechnology)) }, false},
	{"Lower projected ownership cost", "Higher projected ownership cost", func(v Vehicle) float64 { return OwnershipCost(v).Total }, true},
	{"Better environmental profile", "Worse environmental profile", func(v Vehicle) float64 { return EnvironmentalScore(v) }, false},
}

// Rationales walks the fixed attribute list for both vehicles and returns
// the pros/cons and use-case labels for each side.
func Rationales(first, second Vehicle) (Rationale, Rationale) {
	a := Rationale{Pros: []string{}, Cons: []string{}}
	b := Rationale{Pros: []string{}, Cons: []string{}}

	for _, rule := range rationaleRules {
		va, vb := rule.value(first), rule.value(second)
		if va == vb {
			continue
		}
		firstBetter := va < vb
		if !rule.lowerIsPro {
			firstBetter = va > vb
		}
		if firstBetter {
			a.Pros = append(a.Pros, rule.pro)
			b.Cons = append(b.Cons, rule.con)
		} else {
			b.Pros = append(b.Pros, rule.pro)
			a.Cons = append(a.Cons, rule.con)
		}
	}

	a.UseCases = UseCases(first)
	b.UseCases = UseCases(second)
	return a, b
}

// UseCases assigns qualitative labels to a vehicle. Predicates are
// non-exclusive: a record may receive zero, one, or many labels.
func UseCases(v Vehicle) []string {
	labels := []string{}

	if v.Category == CategoryHatchback ||
		(v.Category == CategorySedan && (v.FuelType == FuelHybrid || v.FuelType == FuelElectric)) {
		labels = append(labels, UseCaseUrban)
	}
	if v.Drivetrain == Drivetrain4WD || v.Drivetrain == Drivetrain4x4 ||
		(v.Drivetrain == DrivetrainAWD && (v.Category == CategorySUV || v.Category == CategoryTruck)) {
		labels = append(labels, UseCaseOffRoad)
	}
	if v.Category == CategoryMinivan ||
		(v.Category == CategorySUV && CategoryFeatureCount(v, FeatureSafety) >= 2) {
		labels = append(labels, UseCaseFamily)
	}
	if CategoryFeatureCount(v, FeatureComfort) >= 3 {
		labels = append(labels, UseCaseCommuting)
	}
	if CategoryFeatureCount(v, FeatureTechnology) >= 3 {
		labels = append(labels, UseCaseTech)
	}
	if (v.Price > 0 && v.Price < budgetPriceThreshold) || OwnershipCost(v).Total < budgetOwnershipThreshold {
		labels = append(labels, UseCaseBudget)
	}
	if v.FuelType == FuelDiesel || v.FuelType == FuelHybrid || HasFeature(v, "adaptive_cruise") {
		labels = append(labels, UseCaseLongDistance)
	}

	return labels
}

const (
	budgetPriceThreshold     = 15000
	budgetOwnershipThreshold = 18000
)
