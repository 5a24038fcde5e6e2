// internal/workers/settings/sync-settings/models.go
package syncsettings

import "technet-workers/internal/models"

type Input struct {
	UserID      string           `json:"userId,omitempty"`
	Settings    *models.Settings `json:"settings,omitempty"`
	PrefersDark bool             `json:"prefersDark"`
}

type Output struct {
	Settings      models.Settings `json:"settings"`
	ResolvedTheme string          `json:"resolvedTheme"`
	Saved         bool            `json:"saved"`
}
