package storage

import "github.com/javierferna/nasa-asteroid-dashboard/models"

// RowWriter is the interface any table-export backend must satisfy.
type RowWriter interface {
	WriteRows(rows []models.AsteroidRow) error
	Close() error
}
