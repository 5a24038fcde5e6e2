// internal/common/errors/errors.go
package errors

import (
	"fmt"
	"strings"
	"time"
)

type ErrorCode string

const (
	ErrCodeInvalidInput        ErrorCode = "INVALID_INPUT"
	ErrCodeInvalidFilterFormat ErrorCode = "INVALID_FILTER_FORMAT"
	ErrCodeTimeout             ErrorCode = "TIMEOUT"
	ErrCodeInternal            ErrorCode = "INTERNAL_ERROR"

	ErrCodeCatalogUnavailable ErrorCode = "CATALOG_UNAVAILABLE"

	ErrCodeSessionNotFound     ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeSessionStoreFailed  ErrorCode = "SESSION_STORE_FAILED"
	ErrCodeUnknownFlow         ErrorCode = "UNKNOWN_FLOW"
	ErrCodeUnknownProvider     ErrorCode = "UNKNOWN_SIGNUP_PROVIDER"
	ErrCodeSessionFlowMismatch ErrorCode = "SESSION_FLOW_MISMATCH"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeDuplicateApplication     ErrorCode = "DUPLICATE_APPLICATION"
	ErrCodeJobNotFound              ErrorCode = "JOB_NOT_FOUND"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeResendLimitReached     ErrorCode = "RESEND_LIMIT_REACHED"

	ErrCodeSettingsStoreFailed ErrorCode = "SETTINGS_STORE_FAILED"

	ErrCodeNetworkStoreFailed ErrorCode = "NETWORK_STORE_FAILED"
	ErrCodeNoPendingRequest   ErrorCode = "NETWORK_NO_PENDING_REQUEST"
)

// StandardError is the error shape every worker reports to the engine.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error { return e.cause }

// WithMetadata adds a key to Metadata and returns e.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = map[string]interface{}{}
	}
	e.Metadata[key] = value
	return e
}

type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

func causeText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func NewInvalidInputError(details string) *StandardError {
	return newError(ErrCodeInvalidInput, "Task input is invalid", details, false, nil)
}

func NewInvalidFilterFormatError(details string) *StandardError {
	return newError(ErrCodeInvalidFilterFormat, "Invalid filter format", details, false, nil)
}

func NewTimeoutError(operation string, err error) *StandardError {
	return newError(ErrCodeTimeout, fmt.Sprintf("Operation '%s' timed out", operation), causeText(err), true, err)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", causeText(err), false, err)
}

func NewCatalogUnavailableError(err error) *StandardError {
	return newError(ErrCodeCatalogUnavailable, "Job catalog could not be loaded", causeText(err), true, err)
}

func NewSessionNotFoundError(sessionID string) *StandardError {
	return newError(ErrCodeSessionNotFound, "Wizard session not found or expired",
		fmt.Sprintf("sessionId: %s", sessionID), false, nil)
}

func NewSessionStoreFailedError(err error) *StandardError {
	return newError(ErrCodeSessionStoreFailed, "Wizard session store error", causeText(err), true, err)
}

func NewUnknownFlowError(flow string) *StandardError {
	return newError(ErrCodeUnknownFlow, "Unknown wizard flow", fmt.Sprintf("flow: %s", flow), false, nil)
}

func NewUnknownProviderError(provider string) *StandardError {
	return newError(ErrCodeUnknownProvider, "Unsupported sign-up provider", fmt.Sprintf("provider: %s", provider), false, nil)
}

func NewSessionFlowMismatchError(details string) *StandardError {
	return newError(ErrCodeSessionFlowMismatch, "Stored session does not belong to this flow", details, false, nil)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", causeText(err), true, err)
}

func NewDatabaseInsertFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseInsertFailed, "Database insert operation failed", causeText(err), true, err)
}

func NewDuplicateApplicationError(jobID, seekerID string) *StandardError {
	return newError(ErrCodeDuplicateApplication, "Application already exists",
		fmt.Sprintf("jobId: %s, seekerId: %s", jobID, seekerID), false, nil)
}

func NewJobNotFoundError(jobID string) *StandardError {
	return newError(ErrCodeJobNotFound, "Job posting not found or closed", fmt.Sprintf("jobId: %s", jobID), false, nil)
}

func NewNotificationSendFailedError(kind string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Notification delivery failed",
		fmt.Sprintf("type: %s, error: %s", kind, causeText(err)), true, err)
}

func NewResendLimitReachedError(email string, limit int) *StandardError {
	return newError(ErrCodeResendLimitReached, "Verification email resend limit reached",
		fmt.Sprintf("email: %s, limit: %d", email, limit), false, nil)
}

func NewSettingsStoreFailedError(err error) *StandardError {
	return newError(ErrCodeSettingsStoreFailed, "Settings store error", causeText(err), true, err)
}

func NewNetworkStoreFailedError(err error) *StandardError {
	return newError(ErrCodeNetworkStoreFailed, "Network store error", causeText(err), true, err)
}

func NewNoPendingRequestError(personID string) *StandardError {
	return newError(ErrCodeNoPendingRequest, "No pending connection request", fmt.Sprintf("personId: %s", personID), false, nil)
}

// BPMNErrorMapping renames codes whose boundary events use a different name.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeSessionNotFound:     "WIZARD_SESSION_EXPIRED",
	ErrCodeSessionFlowMismatch: "WIZARD_SESSION_EXPIRED",
	ErrCodeUnknownProvider:     "SIGNUP_PROVIDER_UNSUPPORTED",
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCatalogUnavailable,
		ErrCodeSessionStoreFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeDatabaseInsertFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeSettingsStoreFailed,
		ErrCodeNetworkStoreFailed:
		return 3

	case ErrCodeTimeout:
		return 2

	default:
		return 0
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "CATALOG"):
		return "CATALOG"
	case strings.Contains(codeStr, "SESSION") || strings.Contains(codeStr, "FLOW") || strings.Contains(codeStr, "PROVIDER"):
		return "WIZARD"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "APPLICATION") || strings.Contains(codeStr, "JOB_NOT_FOUND"):
		return "DATABASE"
	case strings.Contains(codeStr, "NOTIFICATION") || strings.Contains(codeStr, "RESEND"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "SETTINGS"):
		return "SETTINGS"
	case strings.Contains(codeStr, "NETWORK"):
		return "NETWORK"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
