// internal/workers/listing/search-jobs/models.go
package searchjobs

import (
	"technet-workers/internal/catalog"
	"technet-workers/internal/models"
)

// Input carries the job page state. RawFilters, when set, is a JSON encoded
// JobQuery and replaces Filters.
type Input struct {
	Filters    catalog.JobQuery `json:"filters"`
	RawFilters string           `json:"rawFilters,omitempty"`
	SortBy     string           `json:"sortBy,omitempty"`
	Page       int              `json:"page,omitempty"`
	PageSize   int              `json:"pageSize,omitempty"`
}

type Output struct {
	Jobs          []models.Job `json:"jobs"`
	JobIDs        []string     `json:"jobIds"`
	TotalMatched  int          `json:"totalMatched"`
	TotalPages    int          `json:"totalPages"`
	Page          int          `json:"page"`
	PageSize      int          `json:"pageSize"`
	SortBy        string       `json:"sortBy"`
	ActiveFilters int          `json:"activeFilters"`
}
