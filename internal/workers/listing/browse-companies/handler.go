// internal/workers/listing/browse-companies/handler.go
package browsecompanies

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"technet-workers/internal/catalog"
	"technet-workers/internal/common/camunda"
	apperrors "technet-workers/internal/common/errors"
	"technet-workers/internal/common/logger"
	"technet-workers/internal/common/metrics"
	"technet-workers/internal/listing"
	"technet-workers/internal/models"
)

const TaskType = "browse-companies"

type Handler struct {
	config   *Config
	source   catalog.Source
	pipeline *listing.Pipeline[models.Company]
	errors   *apperrors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, source catalog.Source, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		source:   source,
		pipeline: listing.New(catalog.CompanySchema()),
		errors:   apperrors.NewErrorHandler(log),
		logger:   log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errors.HandleJobError(context.Background(), client, job,
			apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		var stdErr *apperrors.StandardError
		switch {
		case errors.As(err, &stdErr):
		case errors.Is(err, catalog.ErrCatalogUnavailable):
			err = apperrors.NewCatalogUnavailableError(err)
		}
		h.errors.HandleJobError(ctx, client, job, err)
		return
	}

	_ = camunda.CompleteJob(ctx, client, job, output, h.logger)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	companies, err := h.source.Companies(ctx)
	if err != nil {
		return nil, err
	}

	filters := listing.FilterSet{Query: strings.TrimSpace(input.Query)}
	for _, industry := range input.Industries {
		if slug := catalog.Slug(industry); slug != "" {
			if filters.Categories == nil {
				filters.Categories = map[string][]string{}
			}
			filters.Categories["industry"] = append(filters.Categories["industry"], slug)
		}
	}
	if input.MinRating != nil {
		filters.Ranges = map[string]listing.Range{"rating": {Min: input.MinRating}}
	}

	page := listing.PageRequest{PageSize: input.PageSize, PageNumber: input.Page}
	if page.PageSize <= 0 {
		page.PageSize = h.config.DefaultPageSize
	}
	if page.PageNumber < 1 {
		page.PageNumber = 1
	}
	sortKey := catalog.ParseSortKey(input.SortBy)

	res := h.pipeline.Apply(companies, filters, sortKey, page)
	metrics.ListingMatches.WithLabelValues("companies").Observe(float64(res.TotalMatched))

	return &Output{
		Companies:    res.Items,
		TotalMatched: res.TotalMatched,
		TotalPages:   res.TotalPages,
		Page:         page.PageNumber,
		SortBy:       string(sortKey),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
