// internal/workers/listing/toggle-favorite-company/config.go
package togglefavoritecompany

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
