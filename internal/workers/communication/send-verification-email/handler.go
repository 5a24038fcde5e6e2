// internal/workers/communication/send-verification-email/handler.go
package sendverificationemail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"technet-workers/internal/common/aws"
	"technet-workers/internal/common/camunda"
	apperrors "technet-workers/internal/common/errors"
	"technet-workers/internal/common/logger"
	"technet-workers/internal/common/metrics"
)

const (
	TaskType = "send-verification-email"
)

var (
	ErrInvalidEmail       = errors.New("INVALID_EMAIL")
	ErrResendLimitReached = errors.New("RESEND_LIMIT_REACHED")
	ErrSendFailed         = errors.New("NOTIFICATION_SEND_FAILED")
)

var validate = validator.New()

// Sender delivers one email and returns the provider message id.
type Sender interface {
	Send(ctx context.Context, email aws.Email) (string, error)
}

type Handler struct {
	config  *Config
	sender  Sender
	counter *SendCounter
	errors  *apperrors.ErrorHandler
	logger  logger.Logger
}

func NewHandler(config *Config, sender Sender, counter *SendCounter, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		sender:  sender,
		counter: counter,
		errors:  apperrors.NewErrorHandler(log),
		logger:  log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
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

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errors.HandleJobError(ctx, client, job, h.mapError(err, &input))
		return
	}

	_ = camunda.CompleteJob(ctx, client, job, output, h.logger)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	email := strings.TrimSpace(input.Email)
	if err := validate.Struct(Input{Email: email}); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEmail, input.Email)
	}

	attempt, err := h.counter.Take(ctx, email)
	if err != nil {
		return nil, err
	}
	if attempt > h.config.MaxSends {
		metrics.VerificationEmails.WithLabelValues("limited").Inc()
		return nil, fmt.Errorf("%w: %s sent %d times", ErrResendLimitReached, email, attempt-1)
	}

	token := input.Token
	if token == "" {
		token = uuid.NewString()
	}
	link, err := verifyLink(h.config.VerifyURL, token)
	if err != nil {
		return nil, err
	}
	msg, err := buildEmail(email, strings.TrimSpace(input.FullName), link)
	if err != nil {
		return nil, err
	}

	messageID, err := h.sender.Send(ctx, msg)
	if err != nil {
		metrics.VerificationEmails.WithLabelValues("failed").Inc()
		if rerr := h.counter.Release(ctx, email); rerr != nil {
			h.logger.Warn("failed to release send counter", map[string]interface{}{
				"error": rerr,
				"email": email,
			})
		}
		return nil, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	metrics.VerificationEmails.WithLabelValues("sent").Inc()
	h.logger.Info("verification email sent", map[string]interface{}{
		"email":     email,
		"messageId": messageID,
		"attempt":   attempt,
	})

	return &Output{
		MessageID:        messageID,
		Token:            token,
		Attempt:          attempt,
		RemainingResends: h.config.MaxSends - attempt,
		SentAt:           time.Now().UTC(),
	}, nil
}

func (h *Handler) mapError(err error, input *Input) error {
	switch {
	case errors.Is(err, ErrInvalidEmail):
		return apperrors.NewInvalidInputError(err.Error())
	case errors.Is(err, ErrResendLimitReached):
		return apperrors.NewResendLimitReachedError(input.Email, h.config.MaxSends)
	case errors.Is(err, ErrSendFailed):
		return apperrors.NewNotificationSendFailedError("email", err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewTimeoutError(TaskType, err)
	default:
		return apperrors.NewInternalError(err)
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
