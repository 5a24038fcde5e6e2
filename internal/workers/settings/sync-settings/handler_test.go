// internal/workers/settings/sync-settings/handler_test.go
package syncsettings

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "technet-workers/internal/common/errors"
	"technet-workers/internal/common/logger"
	"technet-workers/internal/models"
	"technet-workers/internal/settings"
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
	store := settings.NewStore(rdb, settings.DefaultKeyPrefix, log)
	return NewHandler(&Config{Timeout: time.Second}, store, log), mr
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_LoadDefaults(t *testing.T) {
	h, _ := newTestHandler(t)

	out, err := h.Execute(context.Background(), TaskTypeLoad, &Input{UserID: "u1", PrefersDark: true})
	require.NoError(t, err)

	assert.Equal(t, models.DefaultSettings(), out.Settings)
	assert.Equal(t, models.ThemeDark, out.ResolvedTheme)
	assert.False(t, out.Saved)
}

func TestHandler_Execute_SaveThenLoad(t *testing.T) {
	h, mr := newTestHandler(t)
	ctx := context.Background()

	var incoming models.Settings
	require.NoError(t, json.Unmarshal([]byte(`{"theme":"neon","jobAlerts":false,"fullName":"Ada","language":"en"}`), &incoming))

	saved, err := h.Execute(ctx, TaskTypeSave, &Input{UserID: "u1", Settings: &incoming})
	require.NoError(t, err)
	assert.True(t, saved.Saved)
	assert.Equal(t, models.ThemeSystem, saved.Settings.Theme)
	assert.Equal(t, models.ThemeLight, saved.ResolvedTheme)
	assert.True(t, mr.Exists("technet_settings:u1"))

	loaded, err := h.Execute(ctx, TaskTypeLoad, &Input{UserID: "u1"})
	require.NoError(t, err)
	assert.False(t, loaded.Settings.JobAlerts)
	assert.True(t, loaded.Settings.EmailNotifications)
	assert.Equal(t, "Ada", loaded.Settings.FullName)
	assert.Equal(t, "en", loaded.Settings.Extra["language"])
}

func TestHandler_Execute_CorruptStoredValue(t *testing.T) {
	h, mr := newTestHandler(t)
	require.NoError(t, mr.Set("technet_settings", "{not json"))

	out, err := h.Execute(context.Background(), TaskTypeLoad, &Input{})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), out.Settings)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_SaveWithoutSettings(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := h.Execute(context.Background(), TaskTypeSave, &Input{UserID: "u1"})
	assert.ErrorIs(t, err, ErrSettingsMissing)
}

func TestHandler_Execute_StoreDown(t *testing.T) {
	h, mr := newTestHandler(t)
	mr.Close()

	_, err := h.Execute(context.Background(), TaskTypeLoad, &Input{UserID: "u1"})
	assert.ErrorIs(t, err, settings.ErrStoreFailed)
}

func TestMapError(t *testing.T) {
	tests := []struct {
		err      error
		expected apperrors.ErrorCode
	}{
		{fmt.Errorf("%w: x", ErrSettingsMissing), apperrors.ErrCodeInvalidInput},
		{fmt.Errorf("%w: x", settings.ErrStoreFailed), apperrors.ErrCodeSettingsStoreFailed},
		{context.DeadlineExceeded, apperrors.ErrCodeTimeout},
		{stderrors.New("boom"), apperrors.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(string(tt.expected), func(t *testing.T) {
			var stdErr *apperrors.StandardError
			require.ErrorAs(t, mapError(tt.err, TaskTypeLoad), &stdErr)
			assert.Equal(t, tt.expected, stdErr.Code)
		})
	}
}
