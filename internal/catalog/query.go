package catalog

import (
	"fmt"
	"strings"

	"github.com/starford/raidho/internal/models"
)

// Criteria selects files for counting and searching. Empty fields mean
// "no filter": an empty Drive matches any drive, an empty Query matches
// any path.
type Criteria struct {
	Drive string // exact drive-name match
	Query string // substring match on the stored path
}

// searchPattern builds the LIKE pattern for a substring query. Literal
// spaces become the single-character wildcard '_', so a query with
// spaces matches any character in those positions rather than a literal
// space. Kept for compatibility with existing catalogs; see DESIGN.md.
func searchPattern(query string) string {
	return "%" + strings.ReplaceAll(query, " ", "_") + "%"
}

// filterClause renders the WHERE clause and arguments for c, with file
// and drive tables aliased f and d.
func filterClause(c Criteria) (string, []any) {
	var conds []string
	var args []any
	if c.Drive != "" {
		conds = append(conds, "d.name = ?")
		args = append(args, c.Drive)
	}
	if c.Query != "" {
		conds = append(conds, "f.path LIKE ?")
		args = append(args, searchPattern(c.Query))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// DriveNames returns all distinct drive names, sorted.
func (db *DB) DriveNames() ([]string, error) {
	return db.distinctNames(`SELECT DISTINCT name FROM drives ORDER BY name`)
}

// CategoryNames returns all distinct category names, sorted.
func (db *DB) CategoryNames() ([]string, error) {
	return db.distinctNames(`SELECT DISTINCT name FROM categories ORDER BY name`)
}

func (db *DB) distinctNames(query string) ([]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("catalog: list names: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// CountFiles returns the number of files matching the criteria.
func (db *DB) CountFiles(c Criteria) (uint64, error) {
	where, args := filterClause(c)
	var n int64
	err := db.conn.QueryRow(`
		SELECT COUNT(*)
		FROM files f
		JOIN drives d ON d.id = f.drive_id`+where, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("catalog: count files: %w", err)
	}
	return clampToUint64(n), nil
}

// SearchFiles returns one window of matching files joined with drive and
// category metadata. Rows are ordered by path, then row id for ties, so
// paging over an unchanged catalog is deterministic.
func (db *DB) SearchFiles(c Criteria, offset, limit uint64) ([]models.FileWithMetadata, error) {
	where, args := filterClause(c)
	args = append(args, clampToInt64(limit), clampToInt64(offset))

	rows, err := db.conn.Query(`
		SELECT c.name, d.name, d.available_space, d.insertion_time, f.path, f.size_bytes
		FROM files f
		JOIN drives d ON d.id = f.drive_id
		JOIN categories c ON c.id = d.category_id`+where+`
		ORDER BY f.path, f.id
		LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("catalog: search files: %w", err)
	}
	defer rows.Close()

	out := []models.FileWithMetadata{}
	for rows.Next() {
		var m models.FileWithMetadata
		var space, size int64
		if err := rows.Scan(&m.CategoryName, &m.DriveName, &space, &m.DriveInsertionTime, &m.Path, &size); err != nil {
			return nil, err
		}
		m.DriveAvailableSpace = clampToUint64(space)
		m.SizeBytes = clampToUint64(size)
		out = append(out, m)
	}
	return out, rows.Err()
}
