package comparison

// Fixed point weights for the pairwise decision. The values are carried
// over verbatim from the original product definition; they always sum
// to 100 and are deliberately not configurable.
const (
	WeightPrice    = 20
	WeightValue    = 25
	WeightCost     = 20
	WeightFeatures = 15
	WeightSafety   = 20
)

// Confidence gap thresholds, fixed constants like the weights.
const (
	highConfidenceGap   = 30
	slightConfidenceGap = 15
)

// Confidence is the qualitative label derived from the score gap.
type Confidence string

const (
	ConfidenceSlight   Confidence = "slight"
	ConfidenceModerate Confidence = "moderate"
	ConfidenceHigh     Confidence = "high"
)

// Pick identifies which side of a comparison won, if either.
type Pick int

const (
	PickNone Pick = iota
	PickFirst
	PickSecond
)

// CategoryResult records the outcome of one weighted pairwise comparison.
// On a tie neither side is awarded the weight.
type CategoryResult struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
	Winner Pick   `json:"winner"`
}

// Decision is the result of the weighted decision function over two
// vehicles' derived scores.
type Decision struct {
	TotalFirst  int              `json:"total_first"`
	TotalSecond int              `json:"total_second"`
	Gap         int              `json:"gap"`
	Recommended Pick             `json:"recommended"`
	Confidence  Confidence       `json:"confidence,omitempty"`
	Categories  []CategoryResult `json:"categories"`
}

// Decide runs the five weighted comparisons between two vehicles and
// selects a recommendation. Every comparison uses strict inequality, so
// equal attributes award neither side; when the two totals are exactly
// equal no recommendation is made and the confidence label is empty.
func Decide(first, second Vehicle) Decision {
	costFirst := OwnershipCost(first).Total
	costSecond := OwnershipCost(second).Total

	categories := []CategoryResult{
		{Name: "price", Weight: WeightPrice, Winner: pickLower(first.Price, second.Price)},
		{Name: "value", Weight: WeightValue, Winner: pickHigher(ValueScore(first), ValueScore(second))},
		{Name: "cost", Weight: WeightCost, Winner: pickLower(costFirst, costSecond)},
		{Name: "features", Weight: WeightFeatures, Winner: pickHigher(float64(FeatureCount(first)), float64(FeatureCount(second)))},
		{Name: "safety", Weight: WeightSafety, Winner: pickHigher(
			float64(CategoryFeatureCount(first, FeatureSafety)),
			float64(CategoryFeatureCount(second, FeatureSafety)))},
	}

	d := Decision{Categories: categories}
	for _, c := range categories {
		switch c.Winner {
		case PickFirst:
			d.TotalFirst += c.Weight
		case PickSecond:
			d.TotalSecond += c.Weight
		}
	}

	switch {
	case d.TotalFirst > d.TotalSecond:
		d.Recommended = PickFirst
		d.Gap = d.TotalFirst - d.TotalSecond
	case d.TotalSecond > d.TotalFirst:
		d.Recommended = PickSecond
		d.Gap = d.TotalSecond - d.TotalFirst
	default:
		d.Recommended = PickNone
		return d
	}

	d.Confidence = confidenceFor(d.Gap)
	return d
}

// confidenceFor maps a nonzero score gap onto its qualitative label.
func confidenceFor(gap int) Confidence {
	switch {
	case gap > highConfidenceGap:
		return ConfidenceHigh
	case gap < slightConfidenceGap:
		return ConfidenceSlight
	default:
		return ConfidenceModerate
	}
}

func pickLower(a, b float64) Pick {
	switch {
	case a < b:
		return PickFirst
	case b < a:
		return PickSecond
	default:
		return PickNone
	}
}

func pickHigher(a, b float64) Pick {
	switch {
	case a > b:
		return PickFirst
	case b > a:
		return PickSecond
	default:
		return PickNone
	}
}
