package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/javierferna/nasa-asteroid-dashboard/models"
	"github.com/javierferna/nasa-asteroid-dashboard/utils"
)

// ErrInvalidCriteria marks criteria rejected before any filtering begins.
var ErrInvalidCriteria = errors.New("invalid criteria")

// millionKm converts the slider's millions-of-km value to internal km.
const millionKm = 1_000_000.0

// Pipeline turns raw approach records plus filter criteria into everything
// a render cycle displays. It is a pure function of its inputs: no state
// survives between calls, and an empty input is never an error.
type Pipeline struct {
	logger *utils.Logger
}

// NewPipeline creates a Pipeline with the given logger.
func NewPipeline(logger *utils.Logger) *Pipeline {
	return &Pipeline{logger: logger}
}

// Apply runs the filter stages in order (hazard, distance, velocity) and
// derives metrics, daily aggregates, the top-N largest subset, and the
// display projection from the fully filtered set.
func (p *Pipeline) Apply(records []models.ApproachRecord, c models.FilterCriteria) (*models.FilterResult, error) {
	if err := validateCriteria(c); err != nil {
		return nil, err
	}

	filtered := filterHazard(records, c.HazardMode)
	filtered = filterDistance(filtered, c.MaxDistanceMkm)
	if c.Velocity != nil {
		filtered = filterVelocity(filtered, *c.Velocity)
	}

	result := &models.FilterResult{
		Filtered: filtered,
		Metrics:  computeMetrics(filtered),
		Daily:    aggregateDaily(filtered),
		Largest:  largestN(filtered, c.TopN),
		Rows:     projectRows(filtered),
	}

	p.logger.Debug("[pipeline] %d/%d records pass filters", len(filtered), len(records))
	return result, nil
}

func validateCriteria(c models.FilterCriteria) error {
	if c.TopN < 1 || c.TopN > models.MaxTopN {
		return fmt.Errorf("%w: top_n %d outside [1, %d]", ErrInvalidCriteria, c.TopN, models.MaxTopN)
	}
	if c.MaxDistanceMkm < 0 {
		return fmt.Errorf("%w: negative max distance %.2f", ErrInvalidCriteria, c.MaxDistanceMkm)
	}
	if c.Velocity != nil && c.Velocity.MaxKmS < c.Velocity.MinKmS {
		return fmt.Errorf("%w: velocity range [%.2f, %.2f] inverted",
			ErrInvalidCriteria, c.Velocity.MinKmS, c.Velocity.MaxKmS)
	}
	return nil
}

// filterHazard returns the input unchanged for HazardAll, preserving order
// and identity.
func filterHazard(records []models.ApproachRecord, mode models.HazardMode) []models.ApproachRecord {
	if mode == models.HazardAll {
		return records
	}
	want := mode == models.HazardousOnly

	result := make([]models.ApproachRecord, 0, len(records))
	for _, r := range records {
		if r.IsHazardous == want {
			result = append(result, r)
		}
	}
	return result
}

func filterDistance(records []models.ApproachRecord, maxMkm float64) []models.ApproachRecord {
	bound := maxMkm * millionKm

	result := make([]models.ApproachRecord, 0, len(records))
	for _, r := range records {
		if r.MissDistanceKm <= bound {
			result = append(result, r)
		}
	}
	return result
}

func filterVelocity(records []models.ApproachRecord, v models.VelocityRange) []models.ApproachRecord {
	result := make([]models.ApproachRecord, 0, len(records))
	for _, r := range records {
		if r.VelocityKmS >= v.MinKmS && r.VelocityKmS <= v.MaxKmS {
			result = append(result, r)
		}
	}
	return result
}

func computeMetrics(records []models.ApproachRecord) models.Metrics {
	m := models.Metrics{Total: len(records)}
	if len(records) == 0 {
		return m
	}

	closest := records[0].MissDistanceKm
	var velocitySum float64
	for _, r := range records {
		if r.IsHazardous {
			m.Hazardous++
		}
		if r.MissDistanceKm < closest {
			closest = r.MissDistanceKm
		}
		velocitySum += r.VelocityKmS
	}

	m.ClosestMissKm = &closest
	m.AvgVelocityKmS = velocitySum / float64(len(records))
	return m
}

// aggregateDaily groups by exact date string and returns rollups sorted by
// date ascending, ready for time-series rendering.
func aggregateDaily(records []models.ApproachRecord) []models.DailyAggregate {
	type bucket struct {
		count     int
		hazardous int
		missSum   float64
	}
	buckets := make(map[string]*bucket)

	for _, r := range records {
		b, ok := buckets[r.ApproachDate]
		if !ok {
			b = &bucket{}
			buckets[r.ApproachDate] = b
		}
		b.count++
		if r.IsHazardous {
			b.hazardous++
		}
		b.missSum += r.MissDistanceKm
	}

	daily := make([]models.DailyAggregate, 0, len(buckets))
	for date, b := range buckets {
		daily = append(daily, models.DailyAggregate{
			Date:              date,
			Count:             b.count,
			HazardousCount:    b.hazardous,
			AvgMissDistanceKm: b.missSum / float64(b.count),
		})
	}

	sort.Slice(daily, func(i, j int) bool {
		return daily[i].Date < daily[j].Date
	})
	return daily
}

// largestN returns the first min(n, len) records sorted by max diameter
// descending. The sort is stable so ties keep their original relative order.
// Presentation order (e.g. reversing for largest-on-top bars) is the
// caller's concern.
func largestN(records []models.ApproachRecord, n int) []models.ApproachRecord {
	sorted := make([]models.ApproachRecord, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MaxDiameterKm > sorted[j].MaxDiameterKm
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// projectRows builds the detail table: closest approach first, with the
// derived million-km column and a categorical hazard label.
func projectRows(records []models.ApproachRecord) []models.AsteroidRow {
	sorted := make([]models.ApproachRecord, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MissDistanceKm < sorted[j].MissDistanceKm
	})

	rows := make([]models.AsteroidRow, 0, len(sorted))
	for _, r := range sorted {
		label := models.LabelSafe
		if r.IsHazardous {
			label = models.LabelHazardous
		}
		rows = append(rows, models.AsteroidRow{
			ID:              r.ID,
			Name:            r.Name,
			ApproachDate:    r.ApproachDate,
			MissDistanceMkm: round2(r.MissDistanceKm / millionKm),
			VelocityKmS:     r.VelocityKmS,
			HazardLabel:     label,
			MinDiameterKm:   r.MinDiameterKm,
			MaxDiameterKm:   r.MaxDiameterKm,
		})
	}
	return rows
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
