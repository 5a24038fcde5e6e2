// internal/catalog/postgres.go
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"technet-workers/internal/models"
)

const jobsQuery = `
	SELECT id, title, company_name, company_size, company_industry, company_funding,
	       company_founded, company_description, location, salary_min, salary_max,
	       job_type, is_remote, experience_level, skills, description, posted_at,
	       match_score, visa_sponsorship
	FROM jobs
	WHERE is_active = true`

const companiesQuery = `
	SELECT id, name, industry, employees, rating, location, open_jobs
	FROM companies`

// PostgresSource reads the catalog from the jobs and companies tables.
type PostgresSource struct {
	db *sql.DB
}

func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) Jobs(ctx context.Context) ([]models.Job, error) {
	rows, err := s.db.QueryContext(ctx, jobsQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: query jobs: %v", ErrCatalogUnavailable, err)
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		var (
			j          models.Job
			size       sql.NullString
			industry   sql.NullString
			funding    sql.NullString
			founded    sql.NullString
			companyDoc sql.NullString
			desc       sql.NullString
			salaryMin  sql.NullInt64
			salaryMax  sql.NullInt64
			matchScore sql.NullInt64
			skills     pq.StringArray
		)
		if err := rows.Scan(
			&j.ID, &j.Title, &j.Company.Name, &size, &industry, &funding,
			&founded, &companyDoc, &j.Location, &salaryMin, &salaryMax,
			&j.Type, &j.IsRemote, &j.ExperienceLevel, &skills, &desc, &j.PostedAt,
			&matchScore, &j.VisaSponsorship,
		); err != nil {
			return nil, fmt.Errorf("%w: scan job: %v", ErrCatalogUnavailable, err)
		}

		j.Company.Size = size.String
		j.Company.Industry = industry.String
		j.Company.Funding = funding.String
		j.Company.Founded = founded.String
		j.Company.Description = companyDoc.String
		j.Description = desc.String
		j.Salary = models.Salary{Min: int(salaryMin.Int64), Max: int(salaryMax.Int64)}
		j.Skills = []string(skills)
		if j.Skills == nil {
			j.Skills = []string{}
		}
		if matchScore.Valid {
			score := int(matchScore.Int64)
			j.MatchScore = &score
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read jobs: %v", ErrCatalogUnavailable, err)
	}
	return jobs, nil
}

func (s *PostgresSource) Companies(ctx context.Context) ([]models.Company, error) {
	rows, err := s.db.QueryContext(ctx, companiesQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: query companies: %v", ErrCatalogUnavailable, err)
	}
	defer rows.Close()

	companies := []models.Company{}
	for rows.Next() {
		var (
			c         models.Company
			employees sql.NullString
			location  sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Industry, &employees, &c.Rating, &location, &c.OpenJobs); err != nil {
			return nil, fmt.Errorf("%w: scan company: %v", ErrCatalogUnavailable, err)
		}
		c.Employees = employees.String
		c.Location = location.String
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read companies: %v", ErrCatalogUnavailable, err)
	}
	return companies, nil
}
