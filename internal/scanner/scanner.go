// Package scanner walks a directory tree and produces normalized file
// records for the catalog.
package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/starford/raidho/internal/models"
)

// RelativePathError reports a visited path that could not be expressed
// relative to the scan root. It should not occur in a normal traversal.
type RelativePathError struct {
	Root string
	Path string
}

func (e *RelativePathError) Error() string {
	return fmt.Sprintf("scanner: path %s is not under root %s", e.Path, e.Root)
}

// MetadataError reports a file whose size could not be read, e.g. due to
// permissions or removal mid-scan.
type MetadataError struct {
	Path string
	Err  error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("scanner: read metadata for %s: %v", e.Path, e.Err)
}

func (e *MetadataError) Unwrap() error { return e.Err }

// Scan recursively enumerates regular files under root in lexical order
// and returns their root-relative paths and sizes. Directories are
// traversed but not emitted. The result is a best-effort snapshot:
// concurrent modification of the tree is not guaranteed to produce a
// consistent view.
//
// Scan is blocking and can take minutes on large trees; callers driving
// an interactive surface must dispatch it to a worker (see the indexer
// package).
func Scan(root string) ([]models.FileEntry, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("scanner: resolve root: %w", err)
	}

	var out []models.FileEntry
	err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return &MetadataError{Path: p, Err: walkErr}
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(abs, p)
		if err != nil || strings.HasPrefix(rel, "..") {
			return &RelativePathError{Root: abs, Path: p}
		}
		info, err := d.Info()
		if err != nil {
			return &MetadataError{Path: p, Err: err}
		}
		size := info.Size()
		if size < 0 {
			size = 0
		}
		out = append(out, models.FileEntry{Path: rel, SizeBytes: uint64(size)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
