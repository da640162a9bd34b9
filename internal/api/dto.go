package api

import (
	"time"

	"github.com/starford/raidho/internal/models"
)

// SubmitScanRequest is the request body for queueing an indexing run.
type SubmitScanRequest struct {
	Root     string `json:"root" example:"/mnt/disk1" validate:"required"`
	Category string `json:"category" example:"Movies" validate:"required"`
	Drive    string `json:"drive" example:"Disk1" validate:"required"`
	Clean    bool   `json:"clean" example:"true"`
}

// SubmitScanResponse acknowledges a queued indexing run.
type SubmitScanResponse struct {
	Generation uint64 `json:"generation" example:"3" validate:"required"`
}

// ScanReport describes the most recent completed indexing run.
type ScanReport struct {
	Generation     uint64    `json:"generation" example:"3"`
	Root           string    `json:"root" example:"/mnt/disk1"`
	Category       string    `json:"category" example:"Movies"`
	Drive          string    `json:"drive" example:"Disk1"`
	ScannedFiles   int       `json:"scanned_files" example:"1042"`
	Inserted       int       `json:"inserted" example:"1042"`
	AvailableSpace uint64    `json:"available_space" example:"52428800"`
	DurationMs     int64     `json:"duration_ms" example:"1850"`
	FinishedAt     time.Time `json:"finished_at"`
	Error          string    `json:"error,omitempty"`
}

// FileListResponse wraps one page of search results.
type FileListResponse struct {
	Files    []models.FileWithMetadata `json:"files" validate:"required"`
	Total    uint64                    `json:"total" example:"42" validate:"required"`
	Page     uint64                    `json:"page" example:"0"`
	PageSize uint64                    `json:"page_size" example:"100"`
}

// DriveListResponse wraps the distinct drive names.
type DriveListResponse struct {
	Drives []string `json:"drives" validate:"required"`
}

// CategoryListResponse wraps the distinct category names.
type CategoryListResponse struct {
	Categories []string `json:"categories" validate:"required"`
}

// LanguageResponse carries the persisted language preference.
type LanguageResponse struct {
	Language string `json:"language" example:"en" validate:"required"`
}
