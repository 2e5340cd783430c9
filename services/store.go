package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/javierferna/nasa-asteroid-dashboard/models"
	"github.com/javierferna/nasa-asteroid-dashboard/source"
	"github.com/javierferna/nasa-asteroid-dashboard/utils"
)

// SnapshotStore holds the raw approach records between refreshes. Repeated
// reads within the TTL return the same immutable snapshot without touching
// the upstream source; an expired snapshot triggers a synchronous refetch
// and an atomic swap, so concurrent readers never observe a half-updated
// record set. Callers must not mutate the returned slice.
type SnapshotStore struct {
	src    source.RecordSource
	ttl    time.Duration
	logger *utils.Logger
	now    func() time.Time

	mu        sync.Mutex
	snapshot  []models.ApproachRecord
	fetchedAt time.Time
}

// NewSnapshotStore creates a store around the given source. The snapshot is
// populated lazily on the first call to Records.
func NewSnapshotStore(src source.RecordSource, ttl time.Duration, logger *utils.Logger) *SnapshotStore {
	return &SnapshotStore{
		src:    src,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Records returns the current snapshot, refreshing it first when expired.
// A failed refresh propagates as-is: the render cycle aborts rather than
// silently serving stale data.
func (s *SnapshotStore) Records(ctx context.Context) ([]models.ApproachRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.fetchedAt.IsZero() && s.now().Sub(s.fetchedAt) < s.ttl {
		return s.snapshot, nil
	}

	raw, err := s.src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: refresh snapshot: %w", err)
	}

	deduped := dedupe(raw)
	if dropped := len(raw) - len(deduped); dropped > 0 {
		s.logger.Warn("[store] dropped %d duplicate (id, approach_date) rows", dropped)
	}

	s.snapshot = deduped
	s.fetchedAt = s.now()
	s.logger.Info("[store] snapshot refreshed: %d records", len(s.snapshot))
	return s.snapshot, nil
}

// dedupe drops repeated (id, approach_date) pairs. The upstream scan has no
// documented ordering for duplicates, so the rule here is deterministic for
// a given fetch: the first-seen row wins and later ones are dropped.
func dedupe(records []models.ApproachRecord) []models.ApproachRecord {
	seen := make(map[string]struct{}, len(records))
	result := make([]models.ApproachRecord, 0, len(records))

	for _, r := range records {
		key := r.ID + "|" + r.ApproachDate
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, r)
	}
	return result
}
