package source

import (
	"context"
	"testing"
	"time"
)

func TestDemoSourceDeterministic(t *testing.T) {
	a, err := NewDemoSource(7, 7).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	b, err := NewDemoSource(7, 7).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(a) != len(b) {
		t.Fatalf("same seed, different lengths: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed, different record at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestDemoSourceWindow(t *testing.T) {
	const windowDays = 7
	records, err := NewDemoSource(1, windowDays).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(records) < 3*(windowDays+1) {
		t.Fatalf("too few records: %d", len(records))
	}

	now := time.Now()
	earliest := now.AddDate(0, 0, -windowDays).Format("2006-01-02")
	latest := now.Format("2006-01-02")

	for _, r := range records {
		if r.ApproachDate < earliest || r.ApproachDate > latest {
			t.Errorf("record %s outside window [%s, %s]: %s", r.ID, earliest, latest, r.ApproachDate)
		}
	}
}

func TestDemoSourceRecordsValid(t *testing.T) {
	records, err := NewDemoSource(99, 7).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	for _, r := range records {
		if r.ID == "" || r.Name == "" {
			t.Errorf("record missing identity: %+v", r)
		}
		if r.MissDistanceKm < 0 || r.VelocityKmS < 0 {
			t.Errorf("negative measurement: %+v", r)
		}
		if r.MinDiameterKm > r.MaxDiameterKm {
			t.Errorf("min diameter exceeds max: %+v", r)
		}
	}
}
