// internal/workers/listing/browse-companies/models.go
package browsecompanies

import "technet-workers/internal/models"

type Input struct {
	Query      string   `json:"query,omitempty"`
	Industries []string `json:"industries,omitempty"`
	MinRating  *float64 `json:"minRating,omitempty"`
	SortBy     string   `json:"sortBy,omitempty"`
	Page       int      `json:"page,omitempty"`
	PageSize   int      `json:"pageSize,omitempty"`
}

type Output struct {
	Companies    []models.Company `json:"companies"`
	TotalMatched int              `json:"totalMatched"`
	TotalPages   int              `json:"totalPages"`
	Page         int              `json:"page"`
	SortBy       string           `json:"sortBy"`
}
