// internal/common/database/connections_test.go
package database

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"technet-workers/internal/common/config"
)

func newConnections(t *testing.T) (*Connections, sqlmock.Sqlmock, *miniredis.Miniredis) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	conns := &Connections{
		Postgres: &PostgresClient{DB: db},
		Redis:    NewRedis(config.RedisConfig{Address: mr.Addr()}),
	}
	t.Cleanup(func() { _ = conns.Close() })
	return conns, mock, mr
}

func TestConnections_Ping(t *testing.T) {
	conns, mock, _ := newConnections(t)
	mock.ExpectPing()

	require.NoError(t, conns.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnections_PingPostgresDown(t *testing.T) {
	conns, mock, _ := newConnections(t)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	err := conns.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres ping failed")
}

func TestConnections_PingRedisDown(t *testing.T) {
	conns, mock, mr := newConnections(t)
	mock.ExpectPing()
	mr.Close()

	err := conns.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping failed")
}

func TestConnections_PingElasticsearch(t *testing.T) {
	healthy := true
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer server.Close()

	conns, mock, _ := newConnections(t)
	es, err := NewElasticsearch(config.ElasticsearchConfig{Addresses: []string{server.URL}})
	require.NoError(t, err)
	conns.Elasticsearch = es

	mock.ExpectPing()
	require.NoError(t, conns.Ping(context.Background()))

	healthy = false
	mock.ExpectPing()
	err = conns.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "elasticsearch ping error")
}
