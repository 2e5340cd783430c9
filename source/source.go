package source

import (
	"context"

	"github.com/javierferna/nasa-asteroid-dashboard/models"
)

// RecordSource is a single read operation returning close-approach rows for
// the trailing window. The store does not care whether rows come from a
// warehouse query or a generator, only that a malformed row fails the whole
// fetch: partial results are never returned.
type RecordSource interface {
	Fetch(ctx context.Context) ([]models.ApproachRecord, error)
}
