// internal/common/camunda/job.go
package camunda

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"technet-workers/internal/common/errors"
	"technet-workers/internal/common/logger"
	"technet-workers/internal/common/metrics"
)

// completeRetry keeps completion retries short; the job lease is the hard limit.
var completeRetry = RetryConfig{MaxRetries: 2, BaseDelay: 200 * time.Millisecond, MaxDelay: time.Second}

// CompleteJob sends output as the job's variables, retrying transient
// gateway errors. The command runs on its own deadline; ctx only carries
// values.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}, log logger.Logger) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), errors.ReportTimeout)
	defer cancel()

	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		log.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return err
	}

	err = WithRetry(ctx, completeRetry, "complete-job", func(ctx context.Context) error {
		_, err := cmd.Send(ctx)
		return err
	})
	if err != nil {
		log.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return err
	}

	metrics.WorkerJobsCompleted.WithLabelValues(job.Type).Inc()
	log.Info("job completed successfully", map[string]interface{}{"jobKey": job.Key})
	return nil
}
