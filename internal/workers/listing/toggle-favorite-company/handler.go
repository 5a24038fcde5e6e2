// internal/workers/listing/toggle-favorite-company/handler.go
package togglefavoritecompany

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/go-playground/validator/v10"

	"technet-workers/internal/common/camunda"
	apperrors "technet-workers/internal/common/errors"
	"technet-workers/internal/common/logger"
	"technet-workers/internal/network"
)

const TaskType = "toggle-favorite-company"

var validate = validator.New()

// FavoriteStore keeps the companies a member starred.
type FavoriteStore interface {
	Toggle(ctx context.Context, userID, companyID string) (bool, error)
	List(ctx context.Context, userID string) ([]string, error)
}

type Handler struct {
	config *Config
	store  FavoriteStore
	errors *apperrors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, store FavoriteStore, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"worker": TaskType})
	return &Handler{
		config: config,
		store:  store,
		errors: apperrors.NewErrorHandler(log),
		logger: log,
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
	in := Input{UserID: strings.TrimSpace(input.UserID), CompanyID: strings.TrimSpace(input.CompanyID)}
	if err := validate.Struct(in); err != nil {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("invalid favorite toggle: %v", err))
	}

	favorite, err := h.store.Toggle(ctx, in.UserID, in.CompanyID)
	if err != nil {
		return nil, err
	}
	list, err := h.store.List(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("favorite toggled", map[string]interface{}{"companyId": in.CompanyID, "favorite": favorite})
	return &Output{CompanyID: in.CompanyID, Favorite: favorite, Favorites: list}, nil
}

func mapError(err error) error {
	var stdErr *apperrors.StandardError
	switch {
	case errors.As(err, &stdErr):
		return stdErr
	case errors.Is(err, network.ErrStoreFailed):
		return apperrors.NewNetworkStoreFailedError(err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewTimeoutError(TaskType, err)
	default:
		return apperrors.NewInternalError(err)
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
