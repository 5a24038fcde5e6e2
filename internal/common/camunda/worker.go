// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.opentelemetry.io/otel/trace"

	"technet-workers/internal/common/config"
	"technet-workers/internal/common/errors"
	"technet-workers/internal/common/logger"
	"technet-workers/internal/common/metrics"
	"technet-workers/internal/common/observability"
	"technet-workers/internal/common/validation"
)

// JobHandler is implemented by every worker package.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// Runtime holds what every job passes through before reaching its handler:
// input schema validation, the job span and the job metrics.
type Runtime struct {
	Validator *validation.Validator
	Errors    *errors.ErrorHandler
	Obs       *observability.Observability
	Logger    logger.Logger
}

// Wrap returns the zeebe handler for taskType. Jobs whose variables fail the
// task's input schema are reported as INVALID_INPUT without reaching handle.
func (r *Runtime) Wrap(taskType string, handle worker.JobHandler) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		active := metrics.WorkerJobsActive.WithLabelValues(taskType)
		active.Inc()
		defer active.Dec()

		ctx := context.Background()
		if r.Obs != nil {
			var span trace.Span
			ctx, span = r.Obs.StartJobSpan(ctx, taskType, job.Key, job.ProcessInstanceKey)
			defer span.End()
			defer func() { r.Obs.RecordJob(ctx, taskType, time.Since(start)) }()
		}
		defer func() { metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(time.Since(start).Seconds()) }()

		if r.Validator != nil {
			if err := r.Validator.Validate(taskType, job.Variables); err != nil {
				r.Errors.HandleJobError(ctx, client, job, err)
				return
			}
		}
		handle(client, job)
	}
}

// CamundaWorker is one open job worker subscription.
type CamundaWorker struct {
	worker   worker.JobWorker
	taskType string
	logger   logger.Logger
}

// Start opens a job worker for taskType unless the worker is disabled.
func (r *Runtime) Start(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler JobHandler) *CamundaWorker {
	if !wcfg.Enabled {
		r.Logger.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return nil
	}

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(r.Wrap(taskType, handler.Handle)).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	r.Logger.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeoutMs":     wcfg.Timeout,
	})
	return &CamundaWorker{worker: jobWorker, taskType: taskType, logger: r.Logger}
}

func (w *CamundaWorker) Stop() {
	w.logger.Info("stopping worker", map[string]interface{}{"taskType": w.taskType})
	w.worker.Close()
	w.worker.AwaitClose()
}
