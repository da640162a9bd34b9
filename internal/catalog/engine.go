package catalog

import (
	"sync"

	"github.com/starford/raidho/internal/metrics"
	"github.com/starford/raidho/internal/models"
)

// Defaults mirroring the interactive page size and the cache threshold.
const (
	DefaultPageSize   = 100
	DefaultCacheLimit = 10000
)

// Engine answers catalog queries with an opportunistic result cache.
// When a criteria combination matches at most cacheLimit files, the full
// result set is fetched once and subsequent pages for the same criteria
// are sliced from memory; larger sets always go through offset/limit
// queries so memory use stays bounded. Caching never changes results.
type Engine struct {
	store      Store
	cacheLimit uint64

	mu    sync.Mutex
	cache resultCache
}

// NewEngine creates a query engine over store. A cacheLimit of 0 selects
// DefaultCacheLimit.
func NewEngine(store Store, cacheLimit uint64) *Engine {
	if cacheLimit == 0 {
		cacheLimit = DefaultCacheLimit
	}
	return &Engine{store: store, cacheLimit: cacheLimit}
}

// DriveNames returns all distinct drive names, sorted.
func (e *Engine) DriveNames() ([]string, error) {
	metrics.QueriesTotal.WithLabelValues("drive_names").Inc()
	return e.store.DriveNames()
}

// CategoryNames returns all distinct category names, sorted.
func (e *Engine) CategoryNames() ([]string, error) {
	metrics.QueriesTotal.WithLabelValues("category_names").Inc()
	return e.store.CategoryNames()
}

// Count returns the number of files matching the criteria. A live cache
// entry for the same criteria answers without touching the store.
func (e *Engine) Count(c Criteria) (uint64, error) {
	metrics.QueriesTotal.WithLabelValues("count").Inc()

	e.mu.Lock()
	defer e.mu.Unlock()
	if items, ok := e.cache.get(c); ok {
		return uint64(len(items)), nil
	}
	return e.store.CountFiles(c)
}

// Search returns one page of files matching the criteria, along with the
// total match count. pageSize 0 selects DefaultPageSize.
func (e *Engine) Search(c Criteria, page, pageSize uint64) (models.Page, error) {
	metrics.QueriesTotal.WithLabelValues("search").Inc()
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if items, ok := e.cache.get(c); ok {
		metrics.QueryCacheHits.Inc()
		return models.Page{Items: slicePage(items, page, pageSize), TotalCount: uint64(len(items))}, nil
	}
	metrics.QueryCacheMisses.Inc()

	total, err := e.store.CountFiles(c)
	if err != nil {
		return models.Page{}, err
	}

	if total <= e.cacheLimit {
		// Small result set: materialize once, page from memory afterwards.
		all, err := e.store.SearchFiles(c, 0, total)
		if err != nil {
			return models.Page{}, err
		}
		e.cache.put(c, all)
		return models.Page{Items: slicePage(all, page, pageSize), TotalCount: uint64(len(all))}, nil
	}

	// Too large to hold: drop whatever criteria were cached before and
	// answer each page directly from the store.
	e.cache.clear()
	items, err := e.store.SearchFiles(c, page*pageSize, pageSize)
	if err != nil {
		return models.Page{}, err
	}
	return models.Page{Items: items, TotalCount: total}, nil
}

// Invalidate discards the cached result set. Callers must invoke it
// after any write so cached pages never show deleted or stale rows.
func (e *Engine) Invalidate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache.clear()
}

func slicePage(items []models.FileWithMetadata, page, pageSize uint64) []models.FileWithMetadata {
	start := page * pageSize
	if start >= uint64(len(items)) {
		return []models.FileWithMetadata{}
	}
	end := start + pageSize
	if end > uint64(len(items)) {
		end = uint64(len(items))
	}
	return items[start:end]
}
