// internal/catalog/query.go
package catalog

import (
	"strings"

	"technet-workers/internal/listing"
)

// SalaryFilter bounds salaries in thousands of USD. Min applies to the lower
// end of the posted band, Max to the upper end.
type SalaryFilter struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// JobQuery is the raw filter state of the job search page.
type JobQuery struct {
	Search      string        `json:"search,omitempty"`
	Quick       []string      `json:"quick,omitempty"`
	Remote      *bool         `json:"remote,omitempty"`
	JobTypes    []string      `json:"jobType,omitempty"`
	Experience  []string      `json:"experience,omitempty"`
	Skills      []string      `json:"skills,omitempty"`
	CompanySize []string      `json:"companySize,omitempty"`
	Salary      *SalaryFilter `json:"salary,omitempty"`
}

// Filters translates the page state into a pipeline filter set.
func (q JobQuery) Filters() listing.FilterSet {
	fs := listing.FilterSet{
		Categories: map[string][]string{},
		Ranges:     map[string]listing.Range{},
		Query:      strings.TrimSpace(q.Search),
	}

	setCategory(fs.Categories, CategoryQuick, lower(q.Quick))
	setCategory(fs.Categories, CategoryType, mapTokens(q.JobTypes, Slug))
	setCategory(fs.Categories, CategoryExperience, lower(q.Experience))
	setCategory(fs.Categories, CategorySkills, mapTokens(q.Skills, SkillToken))
	setCategory(fs.Categories, CategoryCompanySize, lower(q.CompanySize))
	if q.Remote != nil {
		if *q.Remote {
			fs.Categories[CategoryRemote] = []string{"true"}
		} else {
			fs.Categories[CategoryRemote] = []string{"false"}
		}
	}

	if q.Salary != nil {
		if q.Salary.Min != nil {
			fs.Ranges[FieldSalaryMin] = listing.Range{Min: q.Salary.Min}
		}
		if q.Salary.Max != nil {
			fs.Ranges[FieldSalaryMax] = listing.Range{Max: q.Salary.Max}
		}
	}
	return fs
}

func setCategory(dst map[string][]string, name string, tokens []string) {
	if len(tokens) > 0 {
		dst[name] = tokens
	}
}

func lower(values []string) []string {
	return mapTokens(values, func(s string) string { return strings.ToLower(strings.TrimSpace(s)) })
}

func mapTokens(values []string, fn func(string) string) []string {
	var out []string
	for _, v := range values {
		if t := fn(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}
