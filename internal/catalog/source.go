// internal/catalog/source.go
package catalog

import (
	"context"
	"errors"

	"technet-workers/internal/models"
)

var (
	ErrCatalogUnavailable = errors.New("CATALOG_UNAVAILABLE")
	ErrUnknownSource      = errors.New("UNKNOWN_CATALOG_SOURCE")
)

// Source supplies the full job and company collections the listing pipeline
// runs over.
type Source interface {
	Jobs(ctx context.Context) ([]models.Job, error)
	Companies(ctx context.Context) ([]models.Company, error)
}

// StaticSource serves fixed collections.
type StaticSource struct {
	JobList     []models.Job
	CompanyList []models.Company
}

func (s StaticSource) Jobs(ctx context.Context) ([]models.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]models.Job(nil), s.JobList...), nil
}

func (s StaticSource) Companies(ctx context.Context) ([]models.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]models.Company(nil), s.CompanyList...), nil
}
