package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/javierferna/nasa-asteroid-dashboard/models"
)

// CSVWriter exports display-projection rows to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write([]string{
		"id", "name", "approach_date", "miss_distance_mkm",
		"velocity_km_s", "hazard", "min_diameter_km", "max_diameter_km",
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteRows appends the given rows to the CSV file.
func (c *CSVWriter) WriteRows(rows []models.AsteroidRow) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range rows {
		record := []string{
			r.ID,
			r.Name,
			r.ApproachDate,
			strconv.FormatFloat(r.MissDistanceMkm, 'f', 2, 64),
			strconv.FormatFloat(r.VelocityKmS, 'f', -1, 64),
			r.HazardLabel,
			strconv.FormatFloat(r.MinDiameterKm, 'f', -1, 64),
			strconv.FormatFloat(r.MaxDiameterKm, 'f', -1, 64),
		}
		if err := c.writer.Write(record); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
