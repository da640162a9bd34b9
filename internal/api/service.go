package api

import (
	"github.com/starford/raidho/internal/catalog"
	"github.com/starford/raidho/internal/indexer"
	"github.com/starford/raidho/internal/models"
)

// Service coordinates the query engine, the index writer, and the scan
// runner for the API layer.
type Service struct {
	engine   *catalog.Engine
	store    catalog.Store
	runner   *indexer.Runner
	pageSize uint64
}

// NewService creates a new API service. pageSize is the page size used
// when a request does not specify one; 0 selects catalog.DefaultPageSize.
func NewService(engine *catalog.Engine, store catalog.Store, runner *indexer.Runner, pageSize uint64) *Service {
	if pageSize == 0 {
		pageSize = catalog.DefaultPageSize
	}
	return &Service{engine: engine, store: store, runner: runner, pageSize: pageSize}
}

// PageSize returns the default page size for search requests.
func (s *Service) PageSize() uint64 {
	return s.pageSize
}

// DriveNames returns all distinct drive names, sorted.
func (s *Service) DriveNames() ([]string, error) {
	return s.engine.DriveNames()
}

// CategoryNames returns all distinct category names, sorted.
func (s *Service) CategoryNames() ([]string, error) {
	return s.engine.CategoryNames()
}

// Search returns one page of files matching the criteria.
func (s *Service) Search(c catalog.Criteria, page, pageSize uint64) (models.Page, error) {
	return s.engine.Search(c, page, pageSize)
}

// SubmitScan queues an asynchronous indexing run and returns its
// generation.
func (s *Service) SubmitScan(req indexer.Request) uint64 {
	return s.runner.Submit(req)
}

// LatestScan returns the most recent completed run, or nil.
func (s *Service) LatestScan() *indexer.Result {
	return s.runner.Latest()
}

// RemoveDuplicates deletes all files for the (category, drive) pair and
// drops any cached result set that could still show them.
func (s *Service) RemoveDuplicates(category, drive string) error {
	if err := s.store.RemoveDuplicates(category, drive); err != nil {
		return err
	}
	s.engine.Invalidate()
	return nil
}

// Language returns the persisted language preference.
func (s *Service) Language() (string, error) {
	return catalog.Language(s.store)
}

// SetLanguage persists the language preference.
func (s *Service) SetLanguage(lang string) error {
	return catalog.SetLanguage(s.store, lang)
}
