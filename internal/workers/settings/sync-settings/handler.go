// internal/workers/settings/sync-settings/handler.go
package syncsettings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"technet-workers/internal/common/camunda"
	apperrors "technet-workers/internal/common/errors"
	"technet-workers/internal/common/logger"
	"technet-workers/internal/models"
	"technet-workers/internal/settings"
)

const (
	TaskTypeLoad = "load-settings"
	TaskTypeSave = "save-settings"
)

var ErrSettingsMissing = errors.New("SETTINGS_MISSING")

// SettingsStore is the persistence used by both task types.
type SettingsStore interface {
	Load(ctx context.Context, userID string) (models.Settings, error)
	Save(ctx context.Context, userID string, s models.Settings) (models.Settings, error)
}

type Handler struct {
	config *Config
	store  SettingsStore
	errors *apperrors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, store SettingsStore, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"worker": "sync-settings"})
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
	var (
		current models.Settings
		err     error
	)
	switch taskType {
	case TaskTypeSave:
		if input.Settings == nil {
			return nil, fmt.Errorf("%w: save-settings needs a settings object", ErrSettingsMissing)
		}
		current, err = h.store.Save(ctx, input.UserID, *input.Settings)
	default:
		current, err = h.store.Load(ctx, input.UserID)
	}
	if err != nil {
		return nil, err
	}

	return &Output{
		Settings:      current,
		ResolvedTheme: current.ResolvedTheme(input.PrefersDark),
		Saved:         taskType == TaskTypeSave,
	}, nil
}

func mapError(err error, taskType string) error {
	switch {
	case errors.Is(err, ErrSettingsMissing):
		return apperrors.NewInvalidInputError(err.Error())
	case errors.Is(err, settings.ErrStoreFailed):
		return apperrors.NewSettingsStoreFailedError(err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewTimeoutError(taskType, err)
	default:
		return apperrors.NewInternalError(err)
	}
}

func (h *Handler) Execute(ctx context.Context, taskType string, input *Input) (*Output, error) {
	return h.execute(ctx, taskType, input)
}
