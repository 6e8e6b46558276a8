package library

import "github.com/rosenlund/cutline/internal/models"

// Catalog defines the interface for media catalog operations. Consumers
// should depend on this interface rather than the concrete *DB type to
// facilitate testing with mocks.
type Catalog interface {
	Upsert(item models.MediaItem) error
	Get(id string) (*models.MediaItem, error)
	ByPath(path string) (*models.MediaItem, error)
	List(kind string) ([]models.MediaItem, error)
	SetDuration(id string, seconds float64) error
	DeleteByPath(path string) error
	DeleteAll() error
	AllPaths() (map[string]string, error)
	Close() error
}

// Verify *DB satisfies Catalog at compile time.
var _ Catalog = (*DB)(nil)
