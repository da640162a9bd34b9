package catalog

import "github.com/starford/raidho/internal/models"

// Store defines the catalog persistence operations.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with in-memory implementations.
type Store interface {
	// Save persists one indexing run atomically: the category is resolved or
	// created by name, a new drive row is inserted, the free-space reading is
	// propagated to every drive row sharing the same name, and all files are
	// bulk-inserted under the new drive. Returns the number of inserted files.
	Save(category, drive string, availableSpace uint64, files []models.FileEntry) (int, error)
	// RemoveDuplicates deletes every file row owned by any drive matching the
	// given (category name, drive name) pair.
	RemoveDuplicates(category, drive string) error
	// DriveNames returns all distinct drive names, sorted.
	DriveNames() ([]string, error)
	// CategoryNames returns all distinct category names, sorted.
	CategoryNames() ([]string, error)
	// CountFiles returns the number of files matching the criteria.
	CountFiles(c Criteria) (uint64, error)
	// SearchFiles returns matching files joined with drive and category
	// metadata, ordered by path then row id, windowed by offset/limit.
	SearchFiles(c Criteria, offset, limit uint64) ([]models.FileWithMetadata, error)
	// Setting returns the stored value for key, or apperr.ErrNotFound.
	Setting(key string) (string, error)
	// SetSetting stores or replaces the value for key.
	SetSetting(key, value string) error
	Close() error
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)
