// internal/catalog/jobs.go
package catalog

import (
	"strings"
	"time"

	"technet-workers/internal/listing"
	"technet-workers/internal/models"
)

// Quick filter tokens offered above the job list.
const (
	QuickRemote     = "remote"
	QuickFullTime   = "full-time"
	QuickSenior     = "senior"
	QuickStartup    = "startup"
	QuickHighSalary = "high-salary"
	QuickVisa       = "visa"
)

// Filter categories understood by JobSchema.
const (
	CategoryQuick       = "quick"
	CategoryRemote      = "remote"
	CategoryType        = "type"
	CategoryExperience  = "experience"
	CategorySkills      = "skills"
	CategoryCompanySize = "companySize"
)

// Numeric fields understood by JobSchema.
const (
	FieldSalaryMin  = "salaryMin"
	FieldSalaryMax  = "salaryMax"
	FieldSalaryHigh = "salaryHigh"
	FieldSalaryLow  = "salaryLow"
	FieldMatchScore = "matchScore"
	FieldPostedAt   = "postedAt"
)

const (
	startupSizeLimit   = 200
	highSalaryFloor    = 100
	seniorLevelKeyword = "Senior"
	leadLevelKeyword   = "Lead"
)

var experienceLevels = []string{"entry", "mid", "senior", "lead"}

// JobSchema binds job postings to the listing pipeline.
func JobSchema() listing.Schema[models.Job] {
	return listing.Schema[models.Job]{
		ID: func(j models.Job) string { return j.ID },
		Categories: map[string]listing.TokensFunc[models.Job]{
			CategoryQuick:       quickTokens,
			CategoryRemote:      remoteTokens,
			CategoryType:        func(j models.Job) []string { return nonEmpty(Slug(j.Type)) },
			CategoryExperience:  experienceTokens,
			CategorySkills:      skillTokens,
			CategoryCompanySize: companySizeTokens,
		},
		Numbers: map[string]listing.NumberFunc[models.Job]{
			FieldSalaryMin: func(j models.Job) (float64, bool) {
				return float64(j.Salary.Min), j.Salary.Min > 0
			},
			FieldSalaryMax: func(j models.Job) (float64, bool) {
				return float64(j.Salary.Max), j.Salary.Max > 0
			},
			FieldSalaryHigh: func(j models.Job) (float64, bool) {
				return firstPositive(j.Salary.Max, j.Salary.Min)
			},
			FieldSalaryLow: func(j models.Job) (float64, bool) {
				return firstPositive(j.Salary.Min, j.Salary.Max)
			},
			FieldMatchScore: func(j models.Job) (float64, bool) {
				if j.MatchScore == nil {
					return 0, false
				}
				return float64(*j.MatchScore), true
			},
		},
		Texts: map[string]listing.TextFunc[models.Job]{
			"title":       func(j models.Job) (string, bool) { return j.Title, j.Title != "" },
			"company":     func(j models.Job) (string, bool) { return j.Company.Name, j.Company.Name != "" },
			"location":    func(j models.Job) (string, bool) { return j.Location, j.Location != "" },
			"skills":      func(j models.Job) (string, bool) { return strings.Join(j.Skills, " "), len(j.Skills) > 0 },
			"description": func(j models.Job) (string, bool) { return j.Description, j.Description != "" },
		},
		Times: map[string]listing.TimeFunc[models.Job]{
			FieldPostedAt: func(j models.Job) (time.Time, bool) { return j.PostedAt, !j.PostedAt.IsZero() },
		},
		Search: []string{"title", "company", "location", "skills", "description"},
		SortFields: map[listing.SortKey]string{
			listing.SortRelevance:   FieldMatchScore,
			listing.SortDateDesc:    FieldPostedAt,
			listing.SortNumericDesc: FieldSalaryHigh,
			listing.SortNumericAsc:  FieldSalaryLow,
			listing.SortAlpha:       "company",
		},
	}
}

func quickTokens(j models.Job) []string {
	var out []string
	if j.IsRemote {
		out = append(out, QuickRemote)
	}
	if j.Type == "Full-time" {
		out = append(out, QuickFullTime)
	}
	if strings.Contains(j.ExperienceLevel, seniorLevelKeyword) || strings.Contains(j.ExperienceLevel, leadLevelKeyword) {
		out = append(out, QuickSenior)
	}
	if n, ok := j.Company.SizeLowerBound(); ok && n < startupSizeLimit {
		out = append(out, QuickStartup)
	}
	if j.Salary.Min >= highSalaryFloor {
		out = append(out, QuickHighSalary)
	}
	if j.VisaSponsorship {
		out = append(out, QuickVisa)
	}
	return out
}

func remoteTokens(j models.Job) []string {
	if j.IsRemote {
		return []string{"true"}
	}
	return []string{"false"}
}

func experienceTokens(j models.Job) []string {
	level := strings.ToLower(j.ExperienceLevel)
	var out []string
	for _, id := range experienceLevels {
		if strings.Contains(level, id) {
			out = append(out, id)
		}
	}
	return out
}

func skillTokens(j models.Job) []string {
	out := make([]string, 0, len(j.Skills))
	for _, s := range j.Skills {
		if tok := SkillToken(s); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// companySizeTokens buckets the size band: startup 1-50, small 51-200,
// medium 201-1000, large 1000+.
func companySizeTokens(j models.Job) []string {
	n, ok := j.Company.SizeLowerBound()
	if !ok {
		return nil
	}
	switch {
	case n <= 50:
		return []string{"startup"}
	case n <= 200:
		return []string{"small"}
	case n < 1000:
		return []string{"medium"}
	}
	return []string{"large"}
}

// Slug lower-cases s and joins its words with dashes ("Full-time" and
// "full time" both become "full-time").
func Slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.ReplaceAll(s, "-", " "))), "-")
}

// SkillToken keeps only the letters and digits of a skill name, lower-cased,
// so "Node.js" matches the "nodejs" filter.
func SkillToken(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

func firstPositive(values ...int) (float64, bool) {
	for _, v := range values {
		if v > 0 {
			return float64(v), true
		}
	}
	return 0, false
}

// ParseSortKey maps the sort options exposed by the job and company pages to
// pipeline sort keys. Anything unrecognised sorts by relevance.
func ParseSortKey(s string) listing.SortKey {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "date", "date-desc", "newest":
		return listing.SortDateDesc
	case "salary-high", "salary-desc", "numeric-desc":
		return listing.SortNumericDesc
	case "salary-low", "salary-asc", "numeric-asc":
		return listing.SortNumericAsc
	case "company", "name", "alpha":
		return listing.SortAlpha
	}
	return listing.SortRelevance
}
