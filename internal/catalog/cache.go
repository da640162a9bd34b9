package catalog

import "github.com/starford/raidho/internal/models"

// resultCache is a single-slot snapshot of one complete result set,
// keyed by the criteria that produced it. It is replaced wholesale when
// the criteria change; there is no multi-entry eviction policy.
type resultCache struct {
	valid    bool
	criteria Criteria
	items    []models.FileWithMetadata
}

func (rc *resultCache) get(c Criteria) ([]models.FileWithMetadata, bool) {
	if !rc.valid || rc.criteria != c {
		return nil, false
	}
	return rc.items, true
}

func (rc *resultCache) put(c Criteria, items []models.FileWithMetadata) {
	rc.valid = true
	rc.criteria = c
	rc.items = items
}

func (rc *resultCache) clear() {
	*rc = resultCache{}
}
