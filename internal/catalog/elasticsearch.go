// internal/catalog/elasticsearch.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"

	"technet-workers/internal/models"
)

const (
	DefaultJobsIndex      = "jobs"
	DefaultCompaniesIndex = "companies"
	defaultSearchSize     = 1000
)

// ElasticsearchSource reads the catalog with a match_all search per index.
// Filtering and ordering stay in the listing pipeline.
type ElasticsearchSource struct {
	client         *elasticsearch.Client
	jobsIndex      string
	companiesIndex string
	size           int
}

func NewElasticsearchSource(client *elasticsearch.Client, jobsIndex, companiesIndex string, size int) *ElasticsearchSource {
	if jobsIndex == "" {
		jobsIndex = DefaultJobsIndex
	}
	if companiesIndex == "" {
		companiesIndex = DefaultCompaniesIndex
	}
	if size <= 0 {
		size = defaultSearchSize
	}
	return &ElasticsearchSource{
		client:         client,
		jobsIndex:      jobsIndex,
		companiesIndex: companiesIndex,
		size:           size,
	}
}

type searchResponse[T any] struct {
	Hits struct {
		Hits []struct {
			ID     string `json:"_id"`
			Source T      `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s *ElasticsearchSource) Jobs(ctx context.Context) ([]models.Job, error) {
	var resp searchResponse[models.Job]
	if err := s.search(ctx, s.jobsIndex, &resp); err != nil {
		return nil, err
	}
	jobs := make([]models.Job, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		j := hit.Source
		if j.ID == "" {
			j.ID = hit.ID
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func (s *ElasticsearchSource) Companies(ctx context.Context) ([]models.Company, error) {
	var resp searchResponse[models.Company]
	if err := s.search(ctx, s.companiesIndex, &resp); err != nil {
		return nil, err
	}
	companies := make([]models.Company, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		c := hit.Source
		if c.ID == "" {
			c.ID = hit.ID
		}
		companies = append(companies, c)
	}
	return companies, nil
}

func (s *ElasticsearchSource) search(ctx context.Context, index string, out interface{}) error {
	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(index),
		s.client.Search.WithBody(strings.NewReader(`{"query":{"match_all":{}}}`)),
		s.client.Search.WithSize(s.size),
	)
	if err != nil {
		return fmt.Errorf("%w: search %s: %v", ErrCatalogUnavailable, index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("%w: search %s: %s", ErrCatalogUnavailable, index, res.Status())
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s hits: %v", ErrCatalogUnavailable, index, err)
	}
	return nil
}
