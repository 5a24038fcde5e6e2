// internal/workers/listing/search-jobs/handler.go
package searchjobs

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

const TaskType = "search-jobs"

var ErrInvalidFilterFormat = errors.New("INVALID_FILTER_FORMAT")

type Handler struct {
	config   *Config
	source   catalog.Source
	pipeline *listing.Pipeline[models.Job]
	errors   *apperrors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, source catalog.Source, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		source:   source,
		pipeline: listing.New(catalog.JobSchema()),
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
		h.errors.HandleJobError(ctx, client, job, mapError(err))
		return
	}

	_ = camunda.CompleteJob(ctx, client, job, output, h.logger)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	query, err := parseQuery(input)
	if err != nil {
		return nil, err
	}

	jobs, err := h.source.Jobs(ctx)
	if err != nil {
		return nil, err
	}

	filters := query.Filters()
	sortKey := catalog.ParseSortKey(input.SortBy)
	page := listing.PageRequest{PageSize: h.pageSize(input.PageSize), PageNumber: input.Page}
	if page.PageNumber < 1 {
		page.PageNumber = 1
	}

	res := h.pipeline.Apply(jobs, filters, sortKey, page)
	metrics.ListingMatches.WithLabelValues("jobs").Observe(float64(res.TotalMatched))

	h.logger.Debug("job listing applied", map[string]interface{}{
		"catalogSize":  len(jobs),
		"totalMatched": res.TotalMatched,
		"sortBy":       string(sortKey),
		"page":         page.PageNumber,
	})

	return &Output{
		Jobs:          res.Items,
		JobIDs:        h.pipeline.IDs(res.Items),
		TotalMatched:  res.TotalMatched,
		TotalPages:    res.TotalPages,
		Page:          page.PageNumber,
		PageSize:      page.PageSize,
		SortBy:        string(sortKey),
		ActiveFilters: countActive(filters),
	}, nil
}

func parseQuery(input *Input) (catalog.JobQuery, error) {
	query := input.Filters
	if raw := strings.TrimSpace(input.RawFilters); raw != "" {
		query = catalog.JobQuery{}
		if err := json.Unmarshal([]byte(raw), &query); err != nil {
			return query, fmt.Errorf("%w: rawFilters: %v", ErrInvalidFilterFormat, err)
		}
	}

	if s := query.Salary; s != nil {
		if (s.Min != nil && *s.Min < 0) || (s.Max != nil && *s.Max < 0) {
			return query, fmt.Errorf("%w: salary bounds must not be negative", ErrInvalidFilterFormat)
		}
		if s.Min != nil && s.Max != nil && *s.Min > *s.Max {
			return query, fmt.Errorf("%w: salary min (%g) > max (%g)", ErrInvalidFilterFormat, *s.Min, *s.Max)
		}
	}
	return query, nil
}

func (h *Handler) pageSize(requested int) int {
	size := requested
	if size <= 0 {
		size = h.config.DefaultPageSize
	}
	if h.config.MaxPageSize > 0 && size > h.config.MaxPageSize {
		size = h.config.MaxPageSize
	}
	return size
}

// countActive is the badge count shown next to the filter panel.
func countActive(fs listing.FilterSet) int {
	n := len(fs.Categories) + len(fs.Ranges)
	if fs.Query != "" {
		n++
	}
	return n
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidFilterFormat):
		return apperrors.NewInvalidFilterFormatError(err.Error())
	case errors.Is(err, catalog.ErrCatalogUnavailable):
		return apperrors.NewCatalogUnavailableError(err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewTimeoutError(TaskType, err)
	default:
		return apperrors.NewInternalError(err)
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
