// internal/workers/network/update-connection/handler_test.go
package updateconnection

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"technet-workers/internal/common/camunda/camundatest"
	apperrors "technet-workers/internal/common/errors"
	"technet-workers/internal/common/logger"
	"technet-workers/internal/network"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestHandler(t *testing.T) (*Handler, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	log := logger.NewTestLogger(t)
	return NewHandler(&Config{Timeout: time.Second}, network.NewStore(rdb, "", log), log), mr
}

func requireCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	var stdErr *apperrors.StandardError
	require.True(t, stderrors.As(mapError(err, "test"), &stdErr), "got %v", err)
	assert.Equal(t, code, stdErr.Code)
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_ConnectThenAccept(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := context.Background()

	out, err := h.Execute(ctx, TaskTypeConnect, &Input{UserID: "me", PersonID: " p2 "})
	require.NoError(t, err)
	assert.Equal(t, "p2", out.PersonID)
	assert.Equal(t, network.StatusPending, out.Status)
	assert.Equal(t, []string{"p2"}, out.Network.Pending)

	out, err = h.Execute(ctx, TaskTypeAccept, &Input{UserID: "me", PersonID: "p2"})
	require.NoError(t, err)
	assert.Equal(t, network.StatusConnected, out.Status)
	assert.Empty(t, out.Network.Pending)
	assert.Equal(t, []string{"p2"}, out.Network.Connected)

	out, err = h.Execute(ctx, TaskTypeLoad, &Input{UserID: "me"})
	require.NoError(t, err)
	assert.Empty(t, out.Status)
	assert.Equal(t, []string{"p2"}, out.Network.Connected)
}

func TestHandler_Execute_CancelRequest(t *testing.T) {
	h, mr := newTestHandler(t)
	ctx := context.Background()

	_, err := h.Execute(ctx, TaskTypeConnect, &Input{UserID: "me", PersonID: "p1"})
	require.NoError(t, err)

	out, err := h.Execute(ctx, TaskTypeCancel, &Input{UserID: "me", PersonID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, network.StatusNone, out.Status)
	assert.Empty(t, out.Network.Pending)
	assert.False(t, mr.Exists("technet_network:me:pending"))
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_Errors(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name     string
		taskType string
		input    Input
		code     apperrors.ErrorCode
	}{
		{name: "missing user", taskType: TaskTypeLoad, input: Input{UserID: "  "}, code: apperrors.ErrCodeInvalidInput},
		{name: "missing person", taskType: TaskTypeConnect, input: Input{UserID: "me"}, code: apperrors.ErrCodeInvalidInput},
		{name: "self connection", taskType: TaskTypeConnect, input: Input{UserID: "me", PersonID: "me"}, code: apperrors.ErrCodeInvalidInput},
		{name: "accept without request", taskType: TaskTypeAccept, input: Input{UserID: "me", PersonID: "p9"}, code: apperrors.ErrCodeNoPendingRequest},
		{name: "unknown task", taskType: "network-block", input: Input{UserID: "me", PersonID: "p1"}, code: apperrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			_, err := h.Execute(context.Background(), tt.taskType, &input)
			require.Error(t, err)
			requireCode(t, err, tt.code)
		})
	}
}

func TestMapError(t *testing.T) {
	requireCode(t, fmt.Errorf("%w: boom", network.ErrStoreFailed), apperrors.ErrCodeNetworkStoreFailed)
	requireCode(t, context.DeadlineExceeded, apperrors.ErrCodeTimeout)
	requireCode(t, stderrors.New("unexpected"), apperrors.ErrCodeInternal)
}

func TestHandler_Handle_RedisDown(t *testing.T) {
	h, mr := newTestHandler(t)
	mr.Close()

	gateway := &camundatest.Gateway{}
	h.Handle(gateway.JobClient(), entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:       7,
		Type:      TaskTypeConnect,
		Retries:   3,
		Variables: `{"userId":"me","personId":"p2"}`,
	}})

	require.Len(t, gateway.Failed(), 1)
	assert.Equal(t, int32(3), gateway.Failed()[0].Retries)
	assert.Contains(t, gateway.Failed()[0].Variables, string(apperrors.ErrCodeNetworkStoreFailed))
	assert.Empty(t, gateway.Completed())
}

func TestHandler_Handle_CompletesJob(t *testing.T) {
	h, _ := newTestHandler(t)

	gateway := &camundatest.Gateway{}
	h.Handle(gateway.JobClient(), entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:       8,
		Type:      TaskTypeConnect,
		Retries:   3,
		Variables: `{"userId":"me","personId":"p2"}`,
	}})

	require.Len(t, gateway.Completed(), 1)
	assert.Contains(t, gateway.Completed()[0].Variables, `"status":"pending"`)
}
