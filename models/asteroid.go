package models

// ApproachRecord is one observed close approach of a near-Earth object.
// Records are immutable once loaded; (ID, ApproachDate) is unique within a
// snapshot after deduplication.
type ApproachRecord struct {
	ID             string  `db:"id" json:"id"`
	Name           string  `db:"name" json:"name"`
	ApproachDate   string  `db:"close_approach_date" json:"approach_date"`
	MissDistanceKm float64 `db:"miss_distance_km" json:"miss_distance_km"`
	VelocityKmS    float64 `db:"velocity_km_s" json:"velocity_km_s"`
	IsHazardous    bool    `db:"is_potentially_hazardous" json:"is_hazardous"`
	MinDiameterKm  float64 `db:"min_diameter_km" json:"min_diameter_km"`
	MaxDiameterKm  float64 `db:"max_diameter_km" json:"max_diameter_km"`
}

// HazardMode selects which hazard classification passes the first filter stage.
type HazardMode int

const (
	HazardAll HazardMode = iota
	HazardousOnly
	NonHazardousOnly
)

// MaxTopN is the upper bound accepted for FilterCriteria.TopN.
const MaxTopN = 50

// VelocityRange is an inclusive bound on approach velocity, supplied only
// when the caller has records to derive it from.
type VelocityRange struct {
	MinKmS float64 `json:"min_km_s"`
	MaxKmS float64 `json:"max_km_s"`
}

// FilterCriteria is rebuilt from user input on every render cycle.
// MaxDistanceMkm is in MILLIONS of km; the pipeline converts to km
// internally. That scale is a hard contract with the slider widget.
type FilterCriteria struct {
	HazardMode     HazardMode
	MaxDistanceMkm float64
	Velocity       *VelocityRange
	TopN           int
}

// Metrics summarises the filtered record set.
//
// ClosestMissKm is nil when the filtered set is empty; zero is a legitimate
// miss distance and must not double as an absence marker. AvgVelocityKmS is
// simply 0 when empty; the two are deliberately asymmetric.
type Metrics struct {
	Total          int      `json:"total"`
	Hazardous      int      `json:"hazardous"`
	ClosestMissKm  *float64 `json:"closest_miss_km"`
	AvgVelocityKmS float64  `json:"avg_velocity_km_s"`
}

// DailyAggregate is the per-date rollup behind the time-series chart.
type DailyAggregate struct {
	Date              string  `json:"date"`
	Count             int     `json:"count"`
	HazardousCount    int     `json:"hazardous_count"`
	AvgMissDistanceKm float64 `json:"avg_miss_distance_km"`
}

// Hazard labels used by the display projection and the proportion chart.
const (
	LabelHazardous = "Potentially Hazardous"
	LabelSafe      = "Safe"
)

// AsteroidRow is one row of the sortable detail table: the filtered record
// closest-first, with the derived million-km distance and a categorical
// label in place of the raw boolean.
type AsteroidRow struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	ApproachDate    string  `json:"approach_date"`
	MissDistanceMkm float64 `json:"miss_distance_mkm"`
	VelocityKmS     float64 `json:"velocity_km_s"`
	HazardLabel     string  `json:"hazard_label"`
	MinDiameterKm   float64 `json:"min_diameter_km"`
	MaxDiameterKm   float64 `json:"max_diameter_km"`
}

// FilterResult bundles everything one render cycle needs.
type FilterResult struct {
	Filtered []ApproachRecord `json:"filtered"`
	Metrics  Metrics          `json:"metrics"`
	Daily    []DailyAggregate `json:"daily"`
	Largest  []ApproachRecord `json:"largest"`
	Rows     []AsteroidRow    `json:"rows"`
}
