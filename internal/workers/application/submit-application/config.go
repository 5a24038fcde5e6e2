// internal/workers/application/submit-application/config.go
package submitapplication

import "time"

type Config struct {
	Timeout time.Duration
	// MaxCoverLetter is the longest cover letter stored, in runes.
	MaxCoverLetter int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:        10 * time.Second,
		MaxCoverLetter: 5000,
	}
}
