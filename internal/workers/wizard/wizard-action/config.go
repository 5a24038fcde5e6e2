// internal/workers/wizard/wizard-action/config.go
package wizardaction

import "time"

type Config struct {
	Timeout time.Duration
	// SensitiveFields are kept in the stored draft but never returned to the
	// process.
	SensitiveFields []string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:         5 * time.Second,
		SensitiveFields: []string{"password", "confirmPassword"},
	}
}
