// internal/common/camunda/client.go
package camunda

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/sethvargo/go-retry"

	"technet-workers/internal/common/config"
	"technet-workers/internal/common/errors"
)

// Client wraps the Zeebe gRPC client.
type Client struct {
	client  zbc.Client
	timeout time.Duration
	retry   RetryConfig
}

type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

var DefaultRetryConfig = RetryConfig{
	MaxRetries: 3,
	BaseDelay:  1 * time.Second,
	MaxDelay:   10 * time.Second,
}

// NewClient dials the gateway and checks the topology before returning.
func NewClient(ctx context.Context, cfg config.CamundaConfig) (*Client, error) {
	zeebeClient, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         cfg.BrokerAddress,
		UsePlaintextConnection: cfg.UsePlaintext,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Zeebe client: %w", err)
	}

	c := &Client{
		client:  zeebeClient,
		timeout: config.GetDuration(cfg.RequestTimeout),
		retry:   DefaultRetryConfig,
	}
	if err := c.HealthCheck(ctx); err != nil {
		zeebeClient.Close()
		return nil, fmt.Errorf("failed to connect to Zeebe broker at %s: %w", cfg.BrokerAddress, err)
	}
	return c, nil
}

func (c *Client) Zeebe() zbc.Client {
	return c.client
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := WithRetry(ctx, c.retry, "topology", func(ctx context.Context) error {
		_, err := c.client.NewTopologyCommand().Send(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("zeebe health check failed: %w", err)
	}
	return nil
}

// WithRetry runs fn with exponential backoff while it fails with a transient
// gateway error.
func WithRetry(ctx context.Context, cfg RetryConfig, operation string, fn func(context.Context) error) error {
	backoff := retry.WithMaxRetries(uint64(cfg.MaxRetries),
		retry.WithCappedDuration(cfg.MaxDelay, retry.NewExponential(cfg.BaseDelay)))

	attempts := 0
	var lastErr error
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		lastErr = fn(ctx)
		if lastErr != nil && isRetryableZeebeError(lastErr) {
			return retry.RetryableError(lastErr)
		}
		return lastErr
	})
	if err == nil {
		return nil
	}
	if lastErr == nil || (ctx.Err() != nil && stderrors.Is(err, ctx.Err())) {
		return fmt.Errorf("operation %s cancelled after %d attempts: %w", operation, attempts, err)
	}
	return mapZeebeError(lastErr, operation, attempts-1)
}

func isRetryableZeebeError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, phrase := range []string{
		"connection refused",
		"connection reset",
		"deadline exceeded",
		"timeout",
		"unavailable",
		"resource exhausted",
	} {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}

func mapZeebeError(err error, operation string, attempt int) error {
	msg := fmt.Sprintf("zeebe operation '%s' failed", operation)
	if attempt > 0 {
		msg += fmt.Sprintf(" after %d retries", attempt)
	}
	wrapped := fmt.Errorf("%s: %w", msg, err)

	lower := strings.ToLower(err.Error())
	if strings.Contains(lower, "deadline exceeded") || strings.Contains(lower, "timeout") {
		return errors.NewTimeoutError("zeebe."+operation, wrapped)
	}
	return errors.NewInternalError(wrapped)
}
