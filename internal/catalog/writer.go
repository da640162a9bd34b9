package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/starford/raidho/internal/models"
)

// Save persists one indexing run inside a single immediate transaction.
// The free-space update deliberately matches by drive name only: two
// physical drives sharing a name will have their readings conflated.
func (db *DB) Save(category, drive string, availableSpace uint64, files []models.FileEntry) (int, error) {
	for _, f := range files {
		if f.Path == "" || filepath.IsAbs(f.Path) {
			return 0, fmt.Errorf("catalog: save: invalid file path %q", f.Path)
		}
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("catalog: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	categoryID, err := resolveCategory(tx, category)
	if err != nil {
		return 0, err
	}

	space := clampToInt64(availableSpace)
	res, err := tx.Exec(`
		INSERT INTO drives (category_id, name, available_space, insertion_time)
		VALUES (?, ?, ?, ?)
	`, categoryID, drive, space, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("catalog: insert drive: %w", err)
	}
	driveID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("catalog: drive id: %w", err)
	}

	// Keep the free-space reading current on every historical snapshot of
	// the same drive, not only the row just inserted.
	if _, err := tx.Exec(`UPDATE drives SET available_space = ? WHERE name = ?`, space, drive); err != nil {
		return 0, fmt.Errorf("catalog: propagate free space: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO files (drive_id, path, size_bytes) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("catalog: prepare file insert: %w", err)
	}
	defer stmt.Close()
	for _, f := range files {
		if _, err := stmt.Exec(driveID, f.Path, clampToInt64(f.SizeBytes)); err != nil {
			return 0, fmt.Errorf("catalog: insert file %s: %w", f.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("catalog: commit: %w", err)
	}
	return len(files), nil
}

// RemoveDuplicates deletes all files owned by drives matching the
// (category, drive) pair. Intended to run before re-indexing the same
// location so repeated scans do not accumulate.
func (db *DB) RemoveDuplicates(category, drive string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("catalog: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.Exec(`
		DELETE FROM files WHERE drive_id IN (
			SELECT d.id
			FROM drives d
			JOIN categories c ON c.id = d.category_id
			WHERE c.name = ? AND d.name = ?
		)
	`, category, drive)
	if err != nil {
		return fmt.Errorf("catalog: remove duplicates: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("catalog: commit: %w", err)
	}
	return nil
}

// resolveCategory returns the id of the category with the given name,
// creating it on first use.
func resolveCategory(tx *sql.Tx, name string) (int64, error) {
	var id int64
	err := tx.QueryRow(`SELECT id FROM categories WHERE name = ? LIMIT 1`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("catalog: lookup category: %w", err)
	}
	res, err := tx.Exec(`INSERT INTO categories (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("catalog: insert category: %w", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("catalog: category id: %w", err)
	}
	return id, nil
}

// clampToInt64 converts an unsigned byte count to SQLite's signed
// INTEGER, saturating at the maximum rather than wrapping negative.
func clampToInt64(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}

// clampToUint64 converts a stored signed value back to the unsigned
// domain representation, flooring negatives at zero.
func clampToUint64(v int64) uint64 {
	if v < 0 {
		return 0
	}
	return uint64(v)
}
