package source

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/javierferna/nasa-asteroid-dashboard/models"
	"github.com/javierferna/nasa-asteroid-dashboard/utils"
)

// PostgresSource reads close-approach rows from the warehouse table.
type PostgresSource struct {
	db         *sqlx.DB
	table      string
	windowDays int
	logger     *utils.Logger
}

// NewPostgresSource opens a connection to PostgreSQL and verifies it with a
// short ping-retry loop (the warehouse container may still be starting).
func NewPostgresSource(dsn, table string, windowDays int, logger *utils.Logger) (*PostgresSource, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	return &PostgresSource{
		db:         db,
		table:      table,
		windowDays: windowDays,
		logger:     logger,
	}, nil
}

// Fetch returns every row whose approach date falls inside the trailing
// window ending today (inclusive). Any query or scan error fails the whole
// fetch; there is no partial-record tolerance.
func (s *PostgresSource) Fetch(ctx context.Context) ([]models.ApproachRecord, error) {
	now := time.Now()
	windowStart := now.AddDate(0, 0, -s.windowDays).Format("2006-01-02")
	windowEnd := now.Format("2006-01-02")

	query := fmt.Sprintf(`
		SELECT
			id,
			name,
			close_approach_date,
			miss_distance_km,
			velocity_km_s,
			is_potentially_hazardous,
			min_diameter_km,
			max_diameter_km
		FROM %s
		WHERE close_approach_date >= $1
		  AND close_approach_date <= $2
		ORDER BY close_approach_date, id
	`, s.table)

	var records []models.ApproachRecord
	if err := s.db.SelectContext(ctx, &records, query, windowStart, windowEnd); err != nil {
		return nil, fmt.Errorf("postgres: fetch approaches: %w", err)
	}

	s.logger.Debug("[source] fetched %d rows from %s (%s .. %s)",
		len(records), s.table, windowStart, windowEnd)
	return records, nil
}

// Close releases the underlying connection pool.
func (s *PostgresSource) Close() error {
	return s.db.Close()
}
