// internal/workers/communication/send-verification-email/limiter.go
package sendverificationemail

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const sendsKeyPrefix = "verification:sends:"

// SendCounter counts verification emails per address inside a fixed window
// that starts with the first send.
type SendCounter struct {
	redis  redis.Cmdable
	window time.Duration
}

func NewSendCounter(rdb redis.Cmdable, window time.Duration) *SendCounter {
	return &SendCounter{redis: rdb, window: window}
}

func sendsKey(email string) string {
	return sendsKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}

// Take records one send and returns the running count.
func (c *SendCounter) Take(ctx context.Context, email string) (int, error) {
	key := sendsKey(email)
	n, err := c.redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", key, err)
	}
	if n == 1 {
		if err := c.redis.Expire(ctx, key, c.window).Err(); err != nil {
			return 0, fmt.Errorf("expire %s: %w", key, err)
		}
	}
	return int(n), nil
}

// Release gives back a send that never reached the provider.
func (c *SendCounter) Release(ctx context.Context, email string) error {
	return c.redis.Decr(ctx, sendsKey(email)).Err()
}
