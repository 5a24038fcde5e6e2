// internal/workers/wizard/wizard-action/handler.go
package wizardaction

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
	"technet-workers/internal/common/metrics"
	"technet-workers/internal/flows"
	"technet-workers/internal/models"
	"technet-workers/internal/sessions"
	"technet-workers/internal/wizard"
)

const (
	TaskTypeStart       = "wizard-start"
	TaskTypeUpdateField = "wizard-update-field"
	TaskTypePrefill     = "wizard-prefill"
	TaskTypeGoNext      = "wizard-go-next"
	TaskTypeGoBack      = "wizard-go-back"
	TaskTypeSubmit      = "wizard-submit"
	TaskTypeAbandon     = "wizard-abandon"
)

// TaskTypes lists every job type served by this handler.
var TaskTypes = []string{
	TaskTypeStart, TaskTypeUpdateField, TaskTypePrefill,
	TaskTypeGoNext, TaskTypeGoBack, TaskTypeSubmit, TaskTypeAbandon,
}

var (
	ErrUnknownAction = errors.New("UNKNOWN_WIZARD_ACTION")
	ErrFlowMismatch  = errors.New("SESSION_FLOW_MISMATCH")
)

type Handler struct {
	config *Config
	store  sessions.Store
	errors *apperrors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, store sessions.Store, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"worker": "wizard-action"})
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
		h.errors.HandleJobError(ctx, client, job, mapError(err, &input))
		return
	}

	_ = camunda.CompleteJob(ctx, client, job, output, log)
}

func (h *Handler) execute(ctx context.Context, taskType string, input *Input) (*Output, error) {
	if taskType == TaskTypeStart {
		return h.start(ctx, input)
	}

	snap, err := h.store.Load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if input.Flow != "" && input.Flow != snap.Flow {
		return nil, fmt.Errorf("%w: session %s belongs to %q, not %q", ErrFlowMismatch, input.SessionID, snap.Flow, input.Flow)
	}

	def, err := flows.Lookup(snap.Flow)
	if err != nil {
		return nil, err
	}
	c, err := wizard.Restore(def, snap, wizard.WithSubmitHook(h.submitted(input.SessionID, def.Name)))
	if err != nil {
		return nil, err
	}

	output := &Output{SessionID: input.SessionID}
	switch taskType {
	case TaskTypeUpdateField:
		c.UpdateField(input.Field, input.Value)
	case TaskTypePrefill:
		output.Outcome = string(c.Prefill(wizard.Draft(input.Values), input.Target))
	case TaskTypeGoNext:
		output.Outcome = string(c.GoNext())
	case TaskTypeGoBack:
		c.GoBack()
	case TaskTypeSubmit:
		payload, ok := c.Submit()
		if !ok {
			output.Outcome = string(wizard.OutcomeBlocked)
			break
		}
		doc, err := flows.Document(def.Name, payload)
		if err != nil {
			return nil, err
		}
		if resume, ok := doc.(models.Resume); ok {
			data, err := flows.ExportResumeJSON(resume)
			if err != nil {
				return nil, err
			}
			output.Export = string(data)
		}
		output.Submitted = true
		output.Document = doc
	case TaskTypeAbandon:
		c.Abandon()
		if err := h.store.Delete(ctx, input.SessionID); err != nil {
			return nil, err
		}
		h.record(def.Name, taskType, output.Outcome)
		output.Wizard = h.redact(c.View())
		return output, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, taskType)
	}

	if err := h.save(ctx, input.SessionID, c); err != nil {
		return nil, err
	}
	h.record(def.Name, taskType, output.Outcome)
	output.Wizard = h.redact(c.View())
	return output, nil
}

func (h *Handler) start(ctx context.Context, input *Input) (*Output, error) {
	def, err := flows.Lookup(input.Flow)
	if err != nil {
		return nil, err
	}

	id := sessions.NewID()
	c, err := wizard.New(def, wizard.WithSubmitHook(h.submitted(id, def.Name)))
	if err != nil {
		return nil, err
	}

	output := &Output{SessionID: id}
	if input.Provider != "" {
		outcome, err := flows.StartSocial(c, input.Provider, input.Profile)
		if err != nil {
			return nil, err
		}
		output.Outcome = string(outcome)
	}

	if err := h.save(ctx, id, c); err != nil {
		return nil, err
	}

	h.logger.Info("wizard session started", map[string]interface{}{
		"sessionId": id,
		"flow":      def.Name,
		"provider":  input.Provider,
		"stepIndex": c.StepIndex(),
	})
	h.record(def.Name, TaskTypeStart, output.Outcome)
	output.Wizard = h.redact(c.View())
	return output, nil
}

// save stores the snapshot. A submitted payload is stored without its
// sensitive fields; an active draft keeps them so earlier steps still
// validate after GoBack.
func (h *Handler) save(ctx context.Context, id string, c *wizard.Controller) error {
	snap := c.Snapshot()
	if snap.State == wizard.StateSubmitted {
		snap.Payload = h.strip(snap.Payload)
	}
	return h.store.Save(ctx, id, snap)
}

func (h *Handler) submitted(sessionID, flow string) func(wizard.Draft) {
	return func(payload wizard.Draft) {
		h.logger.Info("wizard submitted", map[string]interface{}{
			"sessionId": sessionID,
			"flow":      flow,
			"fields":    len(payload),
		})
	}
}

func (h *Handler) redact(v wizard.View) wizard.View {
	v.Draft = h.strip(v.Draft)
	v.Payload = h.strip(v.Payload)
	return v
}

func (h *Handler) strip(d wizard.Draft) wizard.Draft {
	if d == nil {
		return nil
	}
	for _, field := range h.config.SensitiveFields {
		delete(d, field)
	}
	return d
}

func (h *Handler) record(flow, taskType, outcome string) {
	if outcome == "" {
		outcome = "applied"
	}
	metrics.WizardTransitions.WithLabelValues(flow, taskType, outcome).Inc()
}

func mapError(err error, input *Input) error {
	switch {
	case errors.Is(err, sessions.ErrSessionNotFound):
		return apperrors.NewSessionNotFoundError(input.SessionID)
	case errors.Is(err, sessions.ErrSessionStoreFailed):
		return apperrors.NewSessionStoreFailedError(err)
	case errors.Is(err, flows.ErrUnknownFlow):
		return apperrors.NewUnknownFlowError(input.Flow)
	case errors.Is(err, flows.ErrUnknownProvider):
		return apperrors.NewUnknownProviderError(input.Provider)
	case errors.Is(err, ErrFlowMismatch),
		errors.Is(err, wizard.ErrSnapshotMismatch),
		errors.Is(err, wizard.ErrStepIndexInvalid):
		return apperrors.NewSessionFlowMismatchError(err.Error())
	case errors.Is(err, ErrUnknownAction):
		return apperrors.NewInvalidInputError(err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewTimeoutError("wizard-action", err)
	default:
		return apperrors.NewInternalError(err)
	}
}

func (h *Handler) Execute(ctx context.Context, taskType string, input *Input) (*Output, error) {
	return h.execute(ctx, taskType, input)
}
