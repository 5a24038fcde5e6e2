// internal/common/database/connections.go
package database

import (
	"context"
	"fmt"

	"technet-workers/internal/common/config"
)

// Connections groups the backends opened at startup. Elasticsearch is nil
// unless the catalog is served from it.
type Connections struct {
	Postgres      *PostgresClient
	Redis         *RedisClient
	Elasticsearch *ElasticsearchClient
}

// Open connects every backend cfg needs and pings each one.
func Open(ctx context.Context, cfg *config.Config) (*Connections, error) {
	conns := &Connections{}

	pg, err := NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return nil, err
	}
	conns.Postgres = pg

	conns.Redis = NewRedis(cfg.Database.Redis)

	if cfg.Listing.Source == config.SourceElasticsearch {
		es, err := NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			conns.Close()
			return nil, err
		}
		conns.Elasticsearch = es
	}

	if err := conns.Ping(ctx); err != nil {
		conns.Close()
		return nil, err
	}
	return conns, nil
}

// Ping checks every open backend. It backs the readiness endpoint.
func (c *Connections) Ping(ctx context.Context) error {
	if err := c.Postgres.Ping(ctx); err != nil {
		return err
	}
	if err := c.Redis.Ping(ctx); err != nil {
		return err
	}
	if c.Elasticsearch != nil {
		if err := c.Elasticsearch.Ping(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (c *Connections) Close() error {
	var firstErr error
	if err := c.Postgres.Close(); err != nil {
		firstErr = fmt.Errorf("closing postgres: %w", err)
	}
	if err := c.Redis.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing redis: %w", err)
	}
	return firstErr
}
