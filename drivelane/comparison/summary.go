package comparison

// Metrics bundles every derived score for one vehicle. All values are
// recomputed per comparison and never persisted by the engine itself.
type Metrics struct {
	ValueScore         float64       `json:"value_score"`
	EnvironmentalScore float64       `json:"environmental_score"`
	OwnershipCost      CostBreakdown `json:"ownership_cost"`
	FutureValue        float64       `json:"future_value"`
	FeatureCount       int           `json:"feature_count"`
	SafetyFeatureCount int           `json:"safety_feature_count"`
}

// Side pairs one input vehicle with its derived metrics and rationale.
type Side struct {
	Vehicle   Vehicle   `json:"vehicle"`
	Metrics   Metrics   `json:"metrics"`
	Rationale Rationale `json:"rationale"`
}

// Summary is the full output of the comparison engine for two vehicles.
type Summary struct {
	First    Side     `json:"first"`
	Second   Side     `json:"second"`
	Decision Decision `json:"decision"`
}

// ExtractMetrics computes every derived score for a single vehicle.
func ExtractMetrics(v Vehicle) Metrics {
	return Metrics{
		ValueScore:         ValueScore(v),
		EnvironmentalScore: EnvironmentalScore(v),
		OwnershipCost:      OwnershipCost(v),
		FutureValue:        FutureValue(v),
		FeatureCount:       FeatureCount(v),
		SafetyFeatureCount: CategoryFeatureCount(v, FeatureSafety),
	}
}

// Compare runs the whole engine over two vehicles: extractors, weighted
// decision and rationale generation.
func Compare(first, second Vehicle) Summary {
	ra, rb := Rationales(first, second)
	return Summary{
		First:    Side{Vehicle: first, Metrics: ExtractMetrics(first), Rationale: ra},
		Second:   Side{Vehicle: second, Metrics: ExtractMetrics(second), Rationale: rb},
		Decision: Decide(first, second),
	}
}
