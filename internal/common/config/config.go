// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Listing       ListingConfig           `mapstructure:"listing"`
	Wizard        WizardConfig            `mapstructure:"wizard"`
	Settings      SettingsConfig          `mapstructure:"settings"`
	Network       NetworkConfig           `mapstructure:"network"`
	Notifications NotificationConfig      `mapstructure:"notifications"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Metrics       MetricsConfig           `mapstructure:"metrics"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
	UsePlaintext   bool   `mapstructure:"use_plaintext"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"` // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"`
}

// Catalog sources accepted by listing.source.
const (
	SourcePostgres      = "postgres"
	SourceElasticsearch = "elasticsearch"
)

type ListingConfig struct {
	Source          string `mapstructure:"source"`
	JobsIndex       string `mapstructure:"jobs_index"`
	CompaniesIndex  string `mapstructure:"companies_index"`
	SearchSize      int    `mapstructure:"search_size"`
	CacheTTL        int    `mapstructure:"cache_ttl"` // seconds, 0 disables the cache
	DefaultPageSize int    `mapstructure:"default_page_size"`
}

type WizardConfig struct {
	SessionTTL int `mapstructure:"session_ttl"` // minutes
}

type SettingsConfig struct {
	KeyPrefix string `mapstructure:"key_prefix"`
}

type NetworkConfig struct {
	KeyPrefix       string `mapstructure:"key_prefix"`
	FavoritesPrefix string `mapstructure:"favorites_prefix"`
}

type NotificationConfig struct {
	Email struct {
		Enabled     bool   `mapstructure:"enabled"`
		FromEmail   string `mapstructure:"from_email"`
		VerifyURL   string `mapstructure:"verify_url"`
		MaxSends    int    `mapstructure:"max_sends"`
		WindowHours int    `mapstructure:"window_hours"`
	} `mapstructure:"email"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

func (l ListingConfig) CacheDuration() time.Duration {
	return time.Duration(l.CacheTTL) * time.Second
}

func (w WizardConfig) SessionDuration() time.Duration {
	return time.Duration(w.SessionTTL) * time.Minute
}
