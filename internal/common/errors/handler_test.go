// internal/common/errors/handler_test.go
package errors

import (
	"context"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"technet-workers/internal/common/camunda/camundatest"
	"technet-workers/internal/common/logger"
)

func expiredContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	t.Cleanup(cancel)
	<-ctx.Done()
	return ctx
}

func testJob(retries int32) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 7, Type: "search-jobs", Retries: retries}}
}

func TestHandleJobError_ReportsTimeoutAfterJobDeadline(t *testing.T) {
	ctx := expiredContext(t)
	gateway := &camundatest.Gateway{}
	h := NewErrorHandler(logger.NewTestLogger(t))

	h.HandleJobError(ctx, gateway.JobClient(), testJob(3), ctx.Err())

	failed := gateway.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, int64(7), failed[0].JobKey)
	assert.Equal(t, int32(2), failed[0].Retries)
	assert.Contains(t, failed[0].Variables, string(ErrCodeTimeout))
	assert.Empty(t, gateway.Thrown())
}

func TestHandleJobError_ThrowsNonRetryableAfterJobDeadline(t *testing.T) {
	ctx := expiredContext(t)
	gateway := &camundatest.Gateway{}
	h := NewErrorHandler(logger.NewTestLogger(t))

	h.HandleJobError(ctx, gateway.JobClient(), testJob(3), NewInvalidInputError("bad"))

	thrown := gateway.Thrown()
	require.Len(t, thrown, 1)
	assert.Equal(t, string(ErrCodeInvalidInput), thrown[0].ErrorCode)
	assert.Empty(t, gateway.Failed())
}

func TestHandleJobError_NoRetriesLeftThrows(t *testing.T) {
	gateway := &camundatest.Gateway{}
	h := NewErrorHandler(logger.NewTestLogger(t))

	h.HandleJobError(context.Background(), gateway.JobClient(), testJob(0), NewTimeoutError("job", context.DeadlineExceeded))

	thrown := gateway.Thrown()
	require.Len(t, thrown, 1)
	assert.Equal(t, string(ErrCodeTimeout), thrown[0].ErrorCode)
}
