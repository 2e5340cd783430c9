package source

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/javierferna/nasa-asteroid-dashboard/models"
)

// DemoSource is the documented alternate data source: a deterministic
// generator producing plausible close-approach rows across the trailing
// window. The same seed always yields the same snapshot, so demo deployments
// behave reproducibly.
type DemoSource struct {
	seed       int64
	windowDays int
}

// NewDemoSource creates a generator for the given seed and window length.
func NewDemoSource(seed int64, windowDays int) *DemoSource {
	return &DemoSource{seed: seed, windowDays: windowDays}
}

// Fetch generates between 3 and 8 records per day of the window.
func (d *DemoSource) Fetch(_ context.Context) ([]models.ApproachRecord, error) {
	rng := rand.New(rand.NewSource(d.seed))
	now := time.Now()

	var records []models.ApproachRecord
	serial := 0

	for offset := d.windowDays; offset >= 0; offset-- {
		date := now.AddDate(0, 0, -offset).Format("2006-01-02")
		perDay := 3 + rng.Intn(6)

		for i := 0; i < perDay; i++ {
			serial++
			minDiam := 0.01 + rng.Float64()*1.5
			records = append(records, models.ApproachRecord{
				ID:             fmt.Sprintf("54%06d", 100000+rng.Intn(900000)),
				Name:           demoName(rng, now.Year(), serial),
				ApproachDate:   date,
				MissDistanceKm: 50_000 + rng.Float64()*75_000_000,
				VelocityKmS:    5 + rng.Float64()*35,
				IsHazardous:    rng.Float64() < 0.2,
				MinDiameterKm:  minDiam,
				MaxDiameterKm:  minDiam * (1.5 + rng.Float64()),
			})
		}
	}

	return records, nil
}

// demoName mimics provisional asteroid designations like "(2025 AB12)".
func demoName(rng *rand.Rand, year, serial int) string {
	letters := "ABCDEFGHJKLMNOPQRSTUVWXYZ"
	return fmt.Sprintf("(%d %c%c%d)",
		year,
		letters[rng.Intn(len(letters))],
		letters[rng.Intn(len(letters))],
		serial)
}
