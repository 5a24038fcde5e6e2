// internal/workers/application/submit-application/handler.go
package submitapplication

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/go-playground/validator/v10"

	"technet-workers/internal/common/camunda"
	apperrors "technet-workers/internal/common/errors"
	"technet-workers/internal/common/logger"
	"technet-workers/internal/models"
)

const (
	TaskType = "submit-application"
)

var validate = validator.New()

type Handler struct {
	config    *Config
	submitter ApplicationSubmitter
	errors    *apperrors.ErrorHandler
	logger    logger.Logger
}

func NewHandler(config *Config, submitter ApplicationSubmitter, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		submitter: submitter,
		errors:    apperrors.NewErrorHandler(log),
		logger:    log,
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
		h.errors.HandleJobError(ctx, client, job, mapError(err, &input))
		return
	}

	_ = camunda.CompleteJob(ctx, client, job, output, h.logger)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	req := Input{
		SeekerID:    strings.TrimSpace(input.SeekerID),
		JobID:       strings.TrimSpace(input.JobID),
		CoverLetter: strings.TrimSpace(input.CoverLetter),
		ResumeID:    strings.TrimSpace(input.ResumeID),
	}
	if err := validate.Struct(req); err != nil {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("invalid application: %v", err))
	}

	coverLetter := req.CoverLetter
	if r := []rune(coverLetter); h.config.MaxCoverLetter > 0 && len(r) > h.config.MaxCoverLetter {
		coverLetter = string(r[:h.config.MaxCoverLetter])
	}

	app := &models.Application{
		SeekerID:    req.SeekerID,
		JobID:       req.JobID,
		CoverLetter: coverLetter,
		ResumeID:    req.ResumeID,
		Status:      models.ApplicationStatusSubmitted,
		CreatedAt:   time.Now().UTC(),
	}

	title, err := h.submitter.Submit(ctx, app)
	if err != nil {
		return nil, err
	}

	h.logger.Info("application submitted", map[string]interface{}{
		"applicationId": app.ID,
		"seekerId":      app.SeekerID,
		"jobId":         app.JobID,
	})

	return &Output{
		ApplicationID:     app.ID,
		ApplicationStatus: app.Status,
		JobTitle:          title,
		CreatedAt:         app.CreatedAt.Format(time.RFC3339),
	}, nil
}

func mapError(err error, input *Input) error {
	var stdErr *apperrors.StandardError
	switch {
	case errors.As(err, &stdErr):
		return stdErr
	case errors.Is(err, ErrJobNotFound):
		return apperrors.NewJobNotFoundError(input.JobID)
	case errors.Is(err, ErrDuplicateApplication):
		return apperrors.NewDuplicateApplicationError(input.JobID, input.SeekerID)
	case errors.Is(err, ErrDatabaseInsertFailed):
		return apperrors.NewDatabaseInsertFailedError(err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewTimeoutError(TaskType, err)
	default:
		return apperrors.NewInternalError(err)
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
