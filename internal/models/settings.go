// internal/models/settings.go
package models

import "encoding/json"

const (
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"
)

// Settings are the per-user preferences persisted by the settings store.
// Keys the application does not know about are kept in Extra.
type Settings struct {
	Theme              string                 `json:"theme"`
	EmailNotifications bool                   `json:"emailNotifications"`
	JobAlerts          bool                   `json:"jobAlerts"`
	WeeklySummary      bool                   `json:"weeklySummary"`
	FullName           string                 `json:"fullName"`
	Email              string                 `json:"email"`
	Extra              map[string]interface{} `json:"-"`
}

func DefaultSettings() Settings {
	return Settings{
		Theme:              ThemeSystem,
		EmailNotifications: true,
		JobAlerts:          true,
		WeeklySummary:      true,
	}
}

// ResolvedTheme maps the system theme onto light or dark.
func (s Settings) ResolvedTheme(prefersDark bool) string {
	switch s.Theme {
	case ThemeLight, ThemeDark:
		return s.Theme
	}
	if prefersDark {
		return ThemeDark
	}
	return ThemeLight
}

type settingsFields Settings

var knownSettingsKeys = []string{"theme", "emailNotifications", "jobAlerts", "weeklySummary", "fullName", "email"}

// MarshalJSON writes Extra alongside the known keys; known keys win.
func (s Settings) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(settingsFields(s))
	if err != nil {
		return nil, err
	}
	if len(s.Extra) == 0 {
		return known, nil
	}
	merged := make(map[string]interface{}, len(s.Extra)+len(knownSettingsKeys))
	for k, v := range s.Extra {
		merged[k] = v
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(known, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// UnmarshalJSON starts from the defaults so absent toggles stay enabled.
func (s *Settings) UnmarshalJSON(data []byte) error {
	fields := settingsFields(DefaultSettings())
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range knownSettingsKeys {
		delete(raw, k)
	}
	*s = Settings(fields)
	if len(raw) > 0 {
		s.Extra = raw
	} else {
		s.Extra = nil
	}
	return nil
}
