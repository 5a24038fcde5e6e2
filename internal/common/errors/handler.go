// internal/common/errors/handler.go
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"technet-workers/internal/common/metrics"
)

// ReportTimeout bounds a fail or throw command. It is measured from the
// moment of reporting, not from the job's own deadline.
const ReportTimeout = 10 * time.Second

// ErrorHandler reports a failed job either as a retryable failure or as a
// BPMN error the process can catch.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := Normalize(err)
	bpmnErr := ConvertToBPMNError(stdErr)

	h.logError(job, stdErr, bpmnErr)
	metrics.WorkerJobsFailed.WithLabelValues(job.Type, string(stdErr.Code)).Inc()

	if RetriesFor(stdErr, job.Retries) > 0 {
		h.failJobWithRetries(ctx, client, job, bpmnErr, RetriesFor(stdErr, job.Retries))
		return
	}
	h.throwBPMNError(ctx, client, job, bpmnErr)
}

// Normalize finds the StandardError in err's chain. Deadline errors become
// timeouts and anything else an internal error.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError("job", err)
	}
	return NewInternalError(err)
}

// RetriesFor returns the retries to report for stdErr given the retries the
// engine has left for the job. Zero means the error is thrown instead.
func RetriesFor(stdErr *StandardError, remaining int32) int {
	if !stdErr.Retryable || remaining <= 0 {
		return 0
	}
	retries := GetRetryCount(stdErr.Code)
	if int(remaining) < retries {
		retries = int(remaining)
	}
	return retries
}

func (h *ErrorHandler) failJobWithRetries(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError, retries int) {
	cmd := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(int32(retries)).
		ErrorMessage(bpmnErr.Message)

	if varsJSON, err := json.Marshal(bpmnErr.ToErrorVariables()); err == nil {
		if withVars, err := cmd.VariablesFromString(string(varsJSON)); err == nil {
			h.send(ctx, job, func(ctx context.Context) error { _, err := withVars.Send(ctx); return err })
			return
		}
	}
	h.send(ctx, job, func(ctx context.Context) error { _, err := cmd.Send(ctx); return err })
}

func (h *ErrorHandler) throwBPMNError(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError) {
	cmd := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message)

	if varsJSON, err := json.Marshal(bpmnErr.ToErrorVariables()); err == nil {
		if withVars, err := cmd.VariablesFromString(string(varsJSON)); err == nil {
			h.send(ctx, job, func(ctx context.Context) error { _, err := withVars.Send(ctx); return err })
			return
		}
	}
	h.send(ctx, job, func(ctx context.Context) error { _, err := cmd.Send(ctx); return err })
}

func (h *ErrorHandler) send(ctx context.Context, job entities.Job, fn func(context.Context) error) {
	// a timed-out job must still be reported
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ReportTimeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		h.logger.Error("failed to report job failure", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
	}
}

func (h *ErrorHandler) logError(job entities.Job, stdErr *StandardError, bpmnErr *BPMNError) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":           job.Key,
		"jobType":          job.Type,
		"errorCode":        string(stdErr.Code),
		"bpmnErrorCode":    bpmnErr.Code,
		"message":          bpmnErr.Message,
		"details":          stdErr.Details,
		"retryable":        stdErr.Retryable,
		"retries":          bpmnErr.Retries,
		"errorCategory":    GetErrorCategory(stdErr.Code),
		"workflowInstance": job.ProcessInstanceKey,
	})
}
