// internal/catalog/companies.go
package catalog

import (
	"technet-workers/internal/listing"
	"technet-workers/internal/models"
)

// CompanySchema binds the company directory to the listing pipeline.
// Relevance is the rating, highest first; alpha is the company name.
func CompanySchema() listing.Schema[models.Company] {
	return listing.Schema[models.Company]{
		ID: func(c models.Company) string { return c.ID },
		Categories: map[string]listing.TokensFunc[models.Company]{
			"industry": func(c models.Company) []string { return nonEmpty(Slug(c.Industry)) },
		},
		Numbers: map[string]listing.NumberFunc[models.Company]{
			"rating":   func(c models.Company) (float64, bool) { return c.Rating, true },
			"openJobs": func(c models.Company) (float64, bool) { return float64(c.OpenJobs), true },
		},
		Texts: map[string]listing.TextFunc[models.Company]{
			"name":     func(c models.Company) (string, bool) { return c.Name, c.Name != "" },
			"industry": func(c models.Company) (string, bool) { return c.Industry, c.Industry != "" },
		},
		Search: []string{"name", "industry"},
		SortFields: map[listing.SortKey]string{
			listing.SortRelevance:   "rating",
			listing.SortAlpha:       "name",
			listing.SortNumericDesc: "openJobs",
			listing.SortNumericAsc:  "openJobs",
		},
	}
}
