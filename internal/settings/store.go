// internal/settings/store.go
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"technet-workers/internal/common/logger"
	"technet-workers/internal/models"
)

const DefaultKeyPrefix = "technet_settings"

var ErrStoreFailed = errors.New("SETTINGS_STORE_FAILED")

// Store persists one settings object per user. A missing or unreadable
// record loads as the defaults.
type Store struct {
	redis  redis.Cmdable
	prefix string
	logger logger.Logger
}

func NewStore(rdb redis.Cmdable, prefix string, log logger.Logger) *Store {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Store{
		redis:  rdb,
		prefix: prefix,
		logger: log.WithFields(map[string]interface{}{"component": "settings-store"}),
	}
}

// Key returns the redis key for userID; an empty id is the anonymous slot.
func (s *Store) Key(userID string) string {
	if userID == "" {
		return s.prefix
	}
	return s.prefix + ":" + userID
}

func (s *Store) Load(ctx context.Context, userID string) (models.Settings, error) {
	key := s.Key(userID)
	raw, err := s.redis.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("%w: load %s: %v", ErrStoreFailed, key, err)
	}

	var out models.Settings
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.logger.Warn("stored settings are unreadable, using defaults", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return models.DefaultSettings(), nil
	}
	return Normalize(out), nil
}

// Save overwrites the stored object. Last write wins.
func (s *Store) Save(ctx context.Context, userID string, settings models.Settings) (models.Settings, error) {
	settings = Normalize(settings)
	data, err := json.Marshal(settings)
	if err != nil {
		return models.Settings{}, fmt.Errorf("%w: encode: %v", ErrStoreFailed, err)
	}

	key := s.Key(userID)
	if err := s.redis.Set(ctx, key, data, 0).Err(); err != nil {
		return models.Settings{}, fmt.Errorf("%w: save %s: %v", ErrStoreFailed, key, err)
	}
	s.logger.Debug("settings saved", map[string]interface{}{"key": key, "theme": settings.Theme})
	return settings, nil
}

// Normalize replaces an unknown theme with the system theme.
func Normalize(s models.Settings) models.Settings {
	switch s.Theme {
	case models.ThemeSystem, models.ThemeLight, models.ThemeDark:
	default:
		s.Theme = models.ThemeSystem
	}
	return s
}
