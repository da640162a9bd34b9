// Package models defines the data types shared between the scanner,
// the catalog, and the presentation layers.
package models

import (
	"path/filepath"
	"time"
)

// FileEntry is one scanned file: a path relative to the scan root and
// its size in bytes.
type FileEntry struct {
	Path      string `json:"path"`
	SizeBytes uint64 `json:"size_bytes"`
}

// FileWithMetadata is a catalog search hit: a file joined with its
// owning drive and category.
type FileWithMetadata struct {
	CategoryName        string    `json:"category_name"`
	DriveName           string    `json:"drive_name"`
	DriveAvailableSpace uint64    `json:"drive_available_space"`
	DriveInsertionTime  time.Time `json:"drive_insertion_time"`
	Path                string    `json:"path"`
	SizeBytes           uint64    `json:"size_bytes"`
}

// ParentDirectory returns the directory part of the stored path, or ""
// for a file at the scan root.
func (f *FileWithMetadata) ParentDirectory() string {
	dir := filepath.Dir(f.Path)
	if dir == "." {
		return ""
	}
	return dir
}

// Filename returns the last element of the stored path.
func (f *FileWithMetadata) Filename() string {
	return filepath.Base(f.Path)
}

// Page is one page of search results together with the total match
// count, which is stable across all pages of the same criteria.
type Page struct {
	Items      []FileWithMetadata `json:"files"`
	TotalCount uint64             `json:"total"`
}
