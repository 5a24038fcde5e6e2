// internal/workers/listing/browse-companies/config.go
package browsecompanies

import "time"

type Config struct {
	Timeout         time.Duration
	DefaultPageSize int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:         10 * time.Second,
		DefaultPageSize: 20,
	}
}
