package api

import (
	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
func NewRouter(svc *Service, authEnabled bool, token string) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Catalog queries.
	r.Get("/drives", h.ListDrives)
	r.Get("/categories", h.ListCategories)
	r.Get("/files", h.SearchFiles)

	// Index maintenance.
	r.Delete("/files", h.RemoveFiles)
	r.Post("/scans", h.SubmitScan)
	r.Get("/scans/latest", h.LatestScan)

	// Settings.
	r.Get("/settings/language", h.GetLanguage)
	r.Put("/settings/language", h.SetLanguage)

	return r
}
