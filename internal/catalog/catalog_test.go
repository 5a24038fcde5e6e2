// internal/catalog/catalog_test.go
package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"technet-workers/internal/listing"
	"technet-workers/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func score(n int) *int { return &n }

func f(v float64) *float64 { return &v }

var day = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func fixtureJobs() []models.Job {
	return []models.Job{
		{
			ID: "1", Title: "Senior Frontend Developer",
			Company:  models.CompanySummary{Name: "TechCorp Inc.", Size: "500-1000"},
			Location: "San Francisco, CA", Salary: models.Salary{Min: 120, Max: 160},
			Type: "Full-time", IsRemote: true, ExperienceLevel: "Senior Level",
			Skills: []string{"React", "TypeScript", "Node.js"}, PostedAt: day,
			MatchScore: score(95), VisaSponsorship: true,
		},
		{
			ID: "2", Title: "Full Stack Engineer",
			Company:  models.CompanySummary{Name: "StartupXYZ", Size: "50-100"},
			Location: "New York, NY", Salary: models.Salary{Min: 90, Max: 130},
			Type: "Full-time", ExperienceLevel: "Mid Level",
			Skills: []string{"Python", "React", "AWS"}, PostedAt: day.Add(-24 * time.Hour),
			MatchScore: score(88),
		},
		{
			ID: "3", Title: "DevOps Engineer",
			Company:  models.CompanySummary{Name: "CloudTech Solutions", Size: "1000+"},
			Location: "Austin, TX", Salary: models.Salary{Min: 110, Max: 150},
			Type: "Contract", IsRemote: true, ExperienceLevel: "Lead",
			Skills: []string{"Docker", "Kubernetes"}, PostedAt: day.Add(-72 * time.Hour),
		},
		{
			ID: "4", Title: "Junior Developer",
			Company:  models.CompanySummary{Name: "acme labs", Size: "11-50"},
			Location: "Remote", Salary: models.Salary{Min: 60},
			Type: "Part-time", ExperienceLevel: "Entry Level",
			Skills: []string{"JavaScript"}, PostedAt: day.Add(-48 * time.Hour),
			MatchScore: score(70),
		},
	}
}

func applyJobs(q JobQuery, sortBy string, page listing.PageRequest) listing.Result[models.Job] {
	return listing.New(JobSchema()).Apply(fixtureJobs(), q.Filters(), ParseSortKey(sortBy), page)
}

func jobIDs(res listing.Result[models.Job]) []string {
	return listing.New(JobSchema()).IDs(res.Items)
}

// ==========================
// Job Schema Tests
// ==========================

func TestJobSchema_Filters(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		name     string
		query    JobQuery
		expected []string
	}{
		{name: "no filters", query: JobQuery{}, expected: []string{"1", "2", "4", "3"}},
		{name: "quick remote", query: JobQuery{Quick: []string{"remote"}}, expected: []string{"1", "3"}},
		{name: "quick is OR within the category", query: JobQuery{Quick: []string{"visa", "startup"}}, expected: []string{"1", "2", "4"}},
		{name: "quick senior covers lead", query: JobQuery{Quick: []string{"senior"}}, expected: []string{"1", "3"}},
		{name: "quick high salary", query: JobQuery{Quick: []string{"high-salary"}}, expected: []string{"1", "3"}},
		{name: "quick full-time", query: JobQuery{Quick: []string{"Full-Time"}}, expected: []string{"1", "2"}},
		{name: "remote flag false", query: JobQuery{Remote: &no}, expected: []string{"2", "4"}},
		{name: "remote flag true and contract", query: JobQuery{Remote: &yes, JobTypes: []string{"contract"}}, expected: []string{"3"}},
		{name: "experience", query: JobQuery{Experience: []string{"entry", "mid"}}, expected: []string{"2", "4"}},
		{name: "skills slug", query: JobQuery{Skills: []string{"nodejs"}}, expected: []string{"1"}},
		{name: "company size", query: JobQuery{CompanySize: []string{"large", "startup"}}, expected: []string{"2", "4", "3"}},
		{name: "salary band", query: JobQuery{Salary: &SalaryFilter{Min: f(100), Max: f(150)}}, expected: []string{"3"}},
		{name: "salary floor only", query: JobQuery{Salary: &SalaryFilter{Min: f(90)}}, expected: []string{"1", "2", "3"}},
		{name: "salary ceiling excludes unknown max", query: JobQuery{Salary: &SalaryFilter{Max: f(200)}}, expected: []string{"1", "2", "3"}},
		{name: "search across skills", query: JobQuery{Search: "react"}, expected: []string{"1", "2"}},
		{name: "search location", query: JobQuery{Search: "  AUSTIN "}, expected: []string{"3"}},
		{name: "combined", query: JobQuery{Quick: []string{"remote"}, Search: "engineer"}, expected: []string{"3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := applyJobs(tt.query, "relevance", listing.PageRequest{PageSize: 20, PageNumber: 1})
			assert.Equal(t, tt.expected, jobIDs(res))
			assert.Equal(t, len(tt.expected), res.TotalMatched)
		})
	}
}

func TestJobSchema_Sorts(t *testing.T) {
	tests := []struct {
		sortBy   string
		expected []string
	}{
		{sortBy: "relevance", expected: []string{"1", "2", "4", "3"}},
		{sortBy: "", expected: []string{"1", "2", "4", "3"}},
		{sortBy: "bogus", expected: []string{"1", "2", "4", "3"}},
		{sortBy: "date", expected: []string{"1", "2", "4", "3"}},
		{sortBy: "salary-high", expected: []string{"1", "3", "2", "4"}},
		{sortBy: "salary-desc", expected: []string{"1", "3", "2", "4"}},
		{sortBy: "salary-low", expected: []string{"4", "2", "3", "1"}},
		{sortBy: "company", expected: []string{"4", "3", "2", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.sortBy, func(t *testing.T) {
			res := applyJobs(JobQuery{}, tt.sortBy, listing.PageRequest{PageSize: 10, PageNumber: 1})
			assert.Equal(t, tt.expected, jobIDs(res))
		})
	}
}

func TestJobSchema_Paging(t *testing.T) {
	res := applyJobs(JobQuery{}, "relevance", listing.PageRequest{PageSize: 3, PageNumber: 2})
	assert.Equal(t, []string{"3"}, jobIDs(res))
	assert.Equal(t, 4, res.TotalMatched)
	assert.Equal(t, 2, res.TotalPages)
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, listing.SortDateDesc, ParseSortKey("Date"))
	assert.Equal(t, listing.SortNumericDesc, ParseSortKey("salary-desc"))
	assert.Equal(t, listing.SortNumericAsc, ParseSortKey("salary-asc"))
	assert.Equal(t, listing.SortAlpha, ParseSortKey("name"))
	assert.Equal(t, listing.SortRelevance, ParseSortKey("rating"))
	assert.Equal(t, listing.SortRelevance, ParseSortKey(""))
}

func TestSlugAndSkillToken(t *testing.T) {
	assert.Equal(t, "full-time", Slug("Full-time"))
	assert.Equal(t, "full-time", Slug(" full  time "))
	assert.Equal(t, "nodejs", SkillToken("Node.js"))
	assert.Equal(t, "", SkillToken("++"))
}

func TestJobQuery_FiltersDropBlankTokens(t *testing.T) {
	fs := JobQuery{Quick: []string{" ", ""}, Skills: []string{"..."}}.Filters()
	assert.Empty(t, fs.Categories)
	assert.Empty(t, fs.Ranges)
	assert.Equal(t, "", fs.Query)
}

// ==========================
// Company Schema Tests
// ==========================

func TestCompanySchema(t *testing.T) {
	companies := []models.Company{
		{ID: "c1", Name: "Google", Industry: "Technology", Rating: 4.5, OpenJobs: 120},
		{ID: "c2", Name: "Stripe", Industry: "Fintech", Rating: 4.7, OpenJobs: 40},
		{ID: "c3", Name: "Airbnb", Industry: "Travel Technology", Rating: 4.3, OpenJobs: 25},
	}
	p := listing.New(CompanySchema())

	byRating := p.Apply(companies, listing.FilterSet{}, ParseSortKey("rating"), listing.PageRequest{PageNumber: 1})
	assert.Equal(t, []string{"c2", "c1", "c3"}, p.IDs(byRating.Items))

	byName := p.Apply(companies, listing.FilterSet{Query: "tech"}, ParseSortKey("name"), listing.PageRequest{PageNumber: 1})
	assert.Equal(t, []string{"c3", "c1", "c2"}, p.IDs(byName.Items))
}

// ==========================
// Static Source Tests
// ==========================

func TestStaticSource(t *testing.T) {
	src := StaticSource{JobList: fixtureJobs()}

	jobs, err := src.Jobs(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 4)

	jobs[0].Title = "changed"
	again, _ := src.Jobs(context.Background())
	assert.Equal(t, "Senior Frontend Developer", again[0].Title)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Companies(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
