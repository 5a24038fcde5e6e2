// internal/common/errors/errors_test.go
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRetryCount(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected int
	}{
		{ErrCodeCatalogUnavailable, 3},
		{ErrCodeSessionStoreFailed, 3},
		{ErrCodeDatabaseInsertFailed, 3},
		{ErrCodeNotificationSendFailed, 3},
		{ErrCodeSettingsStoreFailed, 3},
		{ErrCodeNetworkStoreFailed, 3},
		{ErrCodeTimeout, 2},
		{ErrCodeNoPendingRequest, 0},
		{ErrCodeInvalidInput, 0},
		{ErrCodeDuplicateApplication, 0},
		{ErrCodeResendLimitReached, 0},
		{ErrCodeSessionNotFound, 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, GetRetryCount(tt.code))
			assert.Equal(t, tt.expected > 0, IsRetryableErrorCode(tt.code))
		})
	}
}

func TestConvertToBPMNError(t *testing.T) {
	bpmn := ConvertToBPMNError(NewSessionNotFoundError("abc").WithMetadata("flow", "resume"))

	assert.Equal(t, "WIZARD_SESSION_EXPIRED", bpmn.Code)
	assert.Equal(t, 0, bpmn.Retries)
	assert.Equal(t, "SESSION_NOT_FOUND", bpmn.ErrorVariables["originalErrorCode"])
	assert.Equal(t, "resume", bpmn.ErrorVariables["flow"])

	vars := bpmn.ToErrorVariables()
	assert.Equal(t, "sessionId: abc", vars["errorDetails"])
	assert.Equal(t, false, vars["retryable"])

	retryable := ConvertToBPMNError(NewCatalogUnavailableError(stderrors.New("redis down")))
	assert.Equal(t, "CATALOG_UNAVAILABLE", retryable.Code)
	assert.Equal(t, 3, retryable.Retries)
}

func TestNormalize(t *testing.T) {
	cause := stderrors.New("connection refused")
	wrapped := fmt.Errorf("loading catalog: %w", NewCatalogUnavailableError(cause))

	got := Normalize(wrapped)
	assert.Equal(t, ErrCodeCatalogUnavailable, got.Code)
	assert.ErrorIs(t, got, cause)

	assert.Equal(t, ErrCodeTimeout, Normalize(fmt.Errorf("query: %w", context.DeadlineExceeded)).Code)

	internal := Normalize(stderrors.New("boom"))
	assert.Equal(t, ErrCodeInternal, internal.Code)
	assert.False(t, internal.Retryable)
	assert.Equal(t, "boom", internal.Details)
}

func TestRetriesFor(t *testing.T) {
	retryable := NewDatabaseInsertFailedError(stderrors.New("deadlock"))

	assert.Equal(t, 3, RetriesFor(retryable, 5))
	assert.Equal(t, 1, RetriesFor(retryable, 1))
	assert.Equal(t, 0, RetriesFor(retryable, 0))
	assert.Equal(t, 0, RetriesFor(NewDuplicateApplicationError("j", "s"), 3))
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "CATALOG", GetErrorCategory(ErrCodeCatalogUnavailable))
	assert.Equal(t, "WIZARD", GetErrorCategory(ErrCodeSessionNotFound))
	assert.Equal(t, "WIZARD", GetErrorCategory(ErrCodeUnknownFlow))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeDuplicateApplication))
	assert.Equal(t, "NOTIFICATION", GetErrorCategory(ErrCodeResendLimitReached))
	assert.Equal(t, "SETTINGS", GetErrorCategory(ErrCodeSettingsStoreFailed))
	assert.Equal(t, "NETWORK", GetErrorCategory(ErrCodeNoPendingRequest))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidInput))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeTimeout))
}

func TestStandardError_Message(t *testing.T) {
	err := NewResendLimitReachedError("ada@example.com", 3)
	require.Error(t, err)
	assert.Equal(t, "StandardError[RESEND_LIMIT_REACHED]: Verification email resend limit reached", err.Error())
	assert.Nil(t, stderrors.Unwrap(err))
}
