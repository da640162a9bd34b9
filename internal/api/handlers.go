package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/starford/raidho/internal/catalog"
	"github.com/starford/raidho/internal/indexer"
)

// Handler holds API route handlers.
type Handler struct {
	svc *Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// ListDrives handles GET /api/drives.
//
//	@Summary		List distinct drive names
//	@Tags			drives
//	@Produce		json
//	@Success		200	{object}	DriveListResponse
//	@Security		BearerAuth
//	@Router			/drives [get]
func (h *Handler) ListDrives(w http.ResponseWriter, r *http.Request) {
	drives, err := h.svc.DriveNames()
	if err != nil {
		slog.Error("list drives failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, DriveListResponse{Drives: nonNilSlice(drives)})
}

// ListCategories handles GET /api/categories.
//
//	@Summary		List distinct category names
//	@Tags			categories
//	@Produce		json
//	@Success		200	{object}	CategoryListResponse
//	@Security		BearerAuth
//	@Router			/categories [get]
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.CategoryNames()
	if err != nil {
		slog.Error("list categories failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, CategoryListResponse{Categories: nonNilSlice(categories)})
}

// SearchFiles handles GET /api/files.
//
//	@Summary		Paginated substring search over the catalog
//	@Tags			files
//	@Produce		json
//	@Param			drive		query		string	false	"Exact drive-name filter"
//	@Param			q			query		string	false	"Substring filter on path"
//	@Param			page		query		int		false	"Zero-based page index"
//	@Param			page_size	query		int		false	"Page size (default 100)"
//	@Success		200			{object}	FileListResponse
//	@Security		BearerAuth
//	@Router			/files [get]
func (h *Handler) SearchFiles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.ParseUint(q.Get("page"), 10, 64)
	pageSize, _ := strconv.ParseUint(q.Get("page_size"), 10, 64)
	if pageSize == 0 {
		pageSize = h.svc.PageSize()
	}

	criteria := catalog.Criteria{Drive: q.Get("drive"), Query: q.Get("q")}
	result, err := h.svc.Search(criteria, page, pageSize)
	if err != nil {
		slog.Error("search failed",
			slog.String("drive", criteria.Drive),
			slog.String("query", criteria.Query),
			slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, FileListResponse{
		Files:    result.Items,
		Total:    result.TotalCount,
		Page:     page,
		PageSize: pageSize,
	})
}

// RemoveFiles handles DELETE /api/files.
//
//	@Summary		Delete all files stored for a category and drive pair
//	@Tags			files
//	@Param			category	query	string	true	"Category name"
//	@Param			drive		query	string	true	"Drive name"
//	@Success		204			"Files removed"
//	@Failure		400			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/files [delete]
func (h *Handler) RemoveFiles(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	drive := r.URL.Query().Get("drive")
	if category == "" || drive == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("category and drive are required"))
		return
	}
	if err := h.svc.RemoveDuplicates(category, drive); err != nil {
		slog.Error("remove files failed",
			slog.String("category", category),
			slog.String("drive", drive),
			slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SubmitScan handles POST /api/scans.
//
//	@Summary		Queue an asynchronous indexing run
//	@Tags			scans
//	@Accept			json
//	@Produce		json
//	@Param			body	body		SubmitScanRequest	true	"Run to queue"
//	@Success		202		{object}	SubmitScanResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/scans [post]
func (h *Handler) SubmitScan(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req SubmitScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Root == "" || req.Category == "" || req.Drive == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("root, category and drive are required"))
		return
	}
	gen := h.svc.SubmitScan(indexer.Request{
		Root:     req.Root,
		Category: req.Category,
		Drive:    req.Drive,
		Clean:    req.Clean,
	})
	writeJSON(w, http.StatusAccepted, SubmitScanResponse{Generation: gen})
}

// LatestScan handles GET /api/scans/latest.
//
//	@Summary		Report the most recent completed indexing run
//	@Tags			scans
//	@Produce		json
//	@Success		200	{object}	ScanReport
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/scans/latest [get]
func (h *Handler) LatestScan(w http.ResponseWriter, r *http.Request) {
	res := h.svc.LatestScan()
	if res == nil {
		writeJSON(w, http.StatusNotFound, errorBody("no completed runs"))
		return
	}
	report := ScanReport{
		Generation:     res.Generation,
		Root:           res.Request.Root,
		Category:       res.Request.Category,
		Drive:          res.Request.Drive,
		ScannedFiles:   res.ScannedFiles,
		Inserted:       res.Inserted,
		AvailableSpace: res.AvailableSpace,
		DurationMs:     res.Duration.Milliseconds(),
		FinishedAt:     res.FinishedAt,
	}
	if res.Err != nil {
		report.Error = res.Err.Error()
	}
	writeJSON(w, http.StatusOK, report)
}

// GetLanguage handles GET /api/settings/language.
//
//	@Summary		Get the persisted language preference
//	@Tags			settings
//	@Produce		json
//	@Success		200	{object}	LanguageResponse
//	@Security		BearerAuth
//	@Router			/settings/language [get]
func (h *Handler) GetLanguage(w http.ResponseWriter, r *http.Request) {
	lang, err := h.svc.Language()
	if err != nil {
		slog.Error("get language failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, LanguageResponse{Language: lang})
}

// SetLanguage handles PUT /api/settings/language.
//
//	@Summary		Persist the language preference
//	@Tags			settings
//	@Accept			json
//	@Produce		json
//	@Param			body	body		LanguageResponse	true	"Language to persist"
//	@Success		200		{object}	LanguageResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/settings/language [put]
func (h *Handler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req LanguageResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Language == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("language is required"))
		return
	}
	if err := h.svc.SetLanguage(req.Language); err != nil {
		slog.Error("set language failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, LanguageResponse{Language: req.Language})
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
