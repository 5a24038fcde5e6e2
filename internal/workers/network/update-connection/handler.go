// internal/workers/network/update-connection/handler.go
package updateconnection

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

const (
	TaskTypeLoad    = "load-network"
	TaskTypeConnect = "network-connect"
	TaskTypeCancel  = "network-cancel-request"
	TaskTypeAccept  = "network-accept"
)

// TaskTypes are the job types this worker serves.
var TaskTypes = []string{TaskTypeLoad, TaskTypeConnect, TaskTypeCancel, TaskTypeAccept}

var (
	ErrPersonMissing = errors.New("PERSON_MISSING")
	ErrUnknownTask   = errors.New("UNKNOWN_TASK_TYPE")
)

var validate = validator.New()

// ConnectionStore is the persistence behind the network page.
type ConnectionStore interface {
	Request(ctx context.Context, userID, personID string) (network.Status, error)
	Cancel(ctx context.Context, userID, personID string) (network.Status, error)
	Accept(ctx context.Context, userID, personID string) (network.Status, error)
	Load(ctx context.Context, userID string) (network.Connections, error)
}

type Handler struct {
	config *Config
	store  ConnectionStore
	errors *apperrors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, store ConnectionStore, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"worker": "update-connection"})
	return &Handler{
		config: config,
		store:  store,
		errors: apperrors.NewErrorHandler(log),
		logger: log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	log := h.logger.WithFields(map[string]interface{}{"taskType": job.Type})
	log.Info("processing job", map[string]interface{}{
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

	output, err := h.execute(ctx, job.Type, &input)
	if err != nil {
		h.errors.HandleJobError(ctx, client, job, mapError(err, job.Type))
		return
	}

	_ = camunda.CompleteJob(ctx, client, job, output, log)
}

func (h *Handler) execute(ctx context.Context, taskType string, input *Input) (*Output, error) {
	in := Input{UserID: strings.TrimSpace(input.UserID), PersonID: strings.TrimSpace(input.PersonID)}
	if err := validate.Struct(in); err != nil {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("invalid network request: %v", err))
	}

	var op func(context.Context, string, string) (network.Status, error)
	switch taskType {
	case TaskTypeLoad:
	case TaskTypeConnect:
		op = h.store.Request
	case TaskTypeCancel:
		op = h.store.Cancel
	case TaskTypeAccept:
		op = h.store.Accept
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTask, taskType)
	}

	out := &Output{}
	if op != nil {
		if in.PersonID == "" {
			return nil, fmt.Errorf("%w: %s needs a personId", ErrPersonMissing, taskType)
		}
		status, err := op(ctx, in.UserID, in.PersonID)
		if errors.Is(err, network.ErrNoPendingRequest) {
			return nil, apperrors.NewNoPendingRequestError(in.PersonID)
		}
		if err != nil {
			return nil, err
		}
		out.PersonID = in.PersonID
		out.Status = status
		h.logger.Info("connection updated", map[string]interface{}{
			"taskType": taskType,
			"personId": in.PersonID,
			"status":   string(status),
		})
	}

	conns, err := h.store.Load(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	out.Network = conns
	return out, nil
}

func mapError(err error, taskType string) error {
	var stdErr *apperrors.StandardError
	switch {
	case errors.As(err, &stdErr):
		return stdErr
	case errors.Is(err, ErrPersonMissing),
		errors.Is(err, ErrUnknownTask),
		errors.Is(err, network.ErrSelfConnection):
		return apperrors.NewInvalidInputError(err.Error())
	case errors.Is(err, network.ErrStoreFailed):
		return apperrors.NewNetworkStoreFailedError(err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewTimeoutError(taskType, err)
	default:
		return apperrors.NewInternalError(err)
	}
}

func (h *Handler) Execute(ctx context.Context, taskType string, input *Input) (*Output, error) {
	return h.execute(ctx, taskType, input)
}
