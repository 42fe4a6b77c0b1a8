package comparison

// FeatureCategory groups feature tags for category-restricted counts.
type FeatureCategory string

const (
	FeatureComfort     FeatureCategory = "comfort"
	FeatureSafety      FeatureCategory = "safety"
	FeatureTechnology  FeatureCategory = "technology"
	FeatureConvenience FeatureCategory = "convenience"
	FeaturePerformance FeatureCategory = "performance"
)

// Importance ranks how much a feature matters within its category.
type Importance string

const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// FeatureMeta describes a known feature tag.
type FeatureMeta struct {
	Category   FeatureCategory
	Importance Importance
}

// FeatureMetadata is the static, process-wide feature table. It is read-only:
// tags not present here still count toward the raw feature total but are
// excluded from every category count.
var FeatureMetadata = map[string]FeatureMeta{
	// safety
	"abs":                 {FeatureSafety, ImportanceHigh},
	"airbags":             {FeatureSafety, ImportanceHigh},
	"lane_assist":         {FeatureSafety, ImportanceMedium},
	"blind_spot_monitor":  {FeatureSafety, ImportanceMedium},
	"adaptive_cruise":     {FeatureSafety, ImportanceMedium},
	"collision_warning":   {FeatureSafety, ImportanceHigh},
	"parking_sensors":     {FeatureSafety, ImportanceLow},
	"rear_camera":         {FeatureSafety, ImportanceMedium},
	"tire_pressure_check": {FeatureSafety, ImportanceLow},

	// comfort
	"heated_seats":     {FeatureComfort, ImportanceMedium},
	"ventilated_seats": {FeatureComfort, ImportanceLow},
	"leather_seats":    {FeatureComfort, ImportanceMedium},
	"power_seats":      {FeatureComfort, ImportanceLow},
	"climate_control":  {FeatureComfort, ImportanceHigh},
	"sunroof":          {FeatureComfort, ImportanceLow},
	"heated_wheel":     {FeatureComfort, ImportanceLow},

	// technology
	"navigation":        {FeatureTechnology, ImportanceMedium},
	"bluetooth":         {FeatureTechnology, ImportanceHigh},
	"apple_carplay":     {FeatureTechnology, ImportanceMedium},
	"android_auto":      {FeatureTechnology, ImportanceMedium},
	"touchscreen":       {FeatureTechnology, ImportanceMedium},
	"heads_up_display":  {FeatureTechnology, ImportanceLow},
	"premium_audio":     {FeatureTechnology, ImportanceLow},
	"wireless_charging": {FeatureTechnology, ImportanceLow},

	// convenience
	"keyless_entry":   {FeatureConvenience, ImportanceMedium},
	"remote_start":    {FeatureConvenience, ImportanceLow},
	"power_tailgate":  {FeatureConvenience, ImportanceLow},
	"roof_rails":      {FeatureConvenience, ImportanceLow},
	"auto_headlights": {FeatureConvenience, ImportanceMedium},
	"rain_sensors":    {FeatureConvenience, ImportanceLow},

	// performance
	"sport_mode":        {FeaturePerformance, ImportanceMedium},
	"paddle_shifters":   {FeaturePerformance, ImportanceLow},
	"tow_package":       {FeaturePerformance, ImportanceMedium},
	"limited_slip_diff": {FeaturePerformance, ImportanceLow},
	"launch_control":    {FeaturePerformance, ImportanceLow},
}

// FeatureCount returns the raw number of feature tags on the record,
// including tags unknown to the metadata table.
func FeatureCount(v Vehicle) int {
	return len(v.Features)
}

// CategoryFeatureCount counts the vehicle's tags that the metadata table
// places in the given category. Unknown tags are silently excluded.
func CategoryFeatureCount(v Vehicle, cat FeatureCategory) int {
	n := 0
	for _, tag := range v.Features {
		if meta, ok := FeatureMetadata[tag]; ok && meta.Category == cat {
			n++
		}
	}
	return n
}

// HasFeature reports whether the record carries the exact tag.
func HasFeature(v Vehicle, tag string) bool {
	for _, t := range v.Features {
		if t == tag {
			return true
		}
	}
	return false
}
