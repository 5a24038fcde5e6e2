// internal/sessions/store.go
package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"technet-workers/internal/wizard"
)

const (
	keyPrefix  = "wizard:session:"
	DefaultTTL = 24 * time.Hour
)

var (
	ErrSessionNotFound    = errors.New("SESSION_NOT_FOUND")
	ErrSessionStoreFailed = errors.New("SESSION_STORE_FAILED")
)

// Store keeps wizard snapshots between jobs.
type Store interface {
	Save(ctx context.Context, id string, snap wizard.Snapshot) error
	Load(ctx context.Context, id string) (wizard.Snapshot, error)
	Delete(ctx context.Context, id string) error
}

// RedisStore writes each snapshot as JSON with a sliding TTL. Concurrent
// writers to one session are last write wins.
type RedisStore struct {
	redis redis.Cmdable
	ttl   time.Duration
}

func NewRedisStore(rdb redis.Cmdable, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{redis: rdb, ttl: ttl}
}

// NewID returns a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}

func Key(id string) string {
	return keyPrefix + id
}

func (s *RedisStore) Save(ctx context.Context, id string, snap wizard.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrSessionStoreFailed, id, err)
	}
	if err := s.redis.Set(ctx, Key(id), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: save %s: %v", ErrSessionStoreFailed, id, err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (wizard.Snapshot, error) {
	raw, err := s.redis.Get(ctx, Key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return wizard.Snapshot{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return wizard.Snapshot{}, fmt.Errorf("%w: load %s: %v", ErrSessionStoreFailed, id, err)
	}

	var snap wizard.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return wizard.Snapshot{}, fmt.Errorf("%w: decode %s: %v", ErrSessionStoreFailed, id, err)
	}
	return snap, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, Key(id)).Err(); err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrSessionStoreFailed, id, err)
	}
	return nil
}
