// internal/catalog/cache.go
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"technet-workers/internal/common/logger"
	"technet-workers/internal/common/metrics"
	"technet-workers/internal/models"
)

const (
	jobsCacheKey      = "catalog:jobs"
	companiesCacheKey = "catalog:companies"
)

// CachedSource is a read-through cache in front of another source. Redis
// failures are logged and the request falls through to the wrapped source.
type CachedSource struct {
	next   Source
	redis  redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedSource(next Source, rdb redis.Cmdable, ttl time.Duration, log logger.Logger) *CachedSource {
	return &CachedSource{
		next:   next,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "catalog-cache"}),
	}
}

func (s *CachedSource) Jobs(ctx context.Context) ([]models.Job, error) {
	return readThrough(ctx, s, jobsCacheKey, s.next.Jobs)
}

func (s *CachedSource) Companies(ctx context.Context) ([]models.Company, error) {
	return readThrough(ctx, s, companiesCacheKey, s.next.Companies)
}

// Invalidate drops both snapshots.
func (s *CachedSource) Invalidate(ctx context.Context) error {
	return s.redis.Del(ctx, jobsCacheKey, companiesCacheKey).Err()
}

func readThrough[T any](ctx context.Context, s *CachedSource, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	cached, err := s.redis.Get(ctx, key).Result()
	switch {
	case err == nil:
		var items []T
		if jsonErr := json.Unmarshal([]byte(cached), &items); jsonErr == nil {
			metrics.CatalogCacheRequests.WithLabelValues(key, "hit").Inc()
			return items, nil
		}
		metrics.CatalogCacheRequests.WithLabelValues(key, "error").Inc()
		s.logger.Warn("discarding unreadable catalog snapshot", map[string]interface{}{"key": key})
	case errors.Is(err, redis.Nil):
		metrics.CatalogCacheRequests.WithLabelValues(key, "miss").Inc()
	default:
		metrics.CatalogCacheRequests.WithLabelValues(key, "error").Inc()
		s.logger.Warn("catalog cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(items)
	if err != nil {
		return items, nil
	}
	if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.Warn("catalog cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
	return items, nil
}
