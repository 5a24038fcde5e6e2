// internal/network/store_test.go
package network

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"technet-workers/internal/common/logger"
)

func newTestStore(t *testing.T) (*Store, *Favorites, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewStore(rdb, "", logger.NewTestLogger(t)), NewFavorites(rdb, ""), mr
}

// ==========================
// Connections
// ==========================

func TestStore_RequestCancelAccept(t *testing.T) {
	s, _, mr := newTestStore(t)
	ctx := context.Background()

	status, err := s.Request(ctx, "me", "p2")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, status)

	status, err = s.Request(ctx, "me", "p2")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, status, "repeated request stays pending")

	_, err = s.Request(ctx, "me", "p1")
	require.NoError(t, err)

	status, err = s.Cancel(ctx, "me", "p1")
	require.NoError(t, err)
	assert.Equal(t, StatusNone, status)

	status, err = s.Accept(ctx, "me", "p2")
	require.NoError(t, err)
	assert.Equal(t, StatusConnected, status)

	got, err := s.Load(ctx, "me")
	require.NoError(t, err)
	assert.Empty(t, got.Pending)
	assert.Equal(t, []string{"p2"}, got.Connected)

	members, err := mr.Members("technet_network:me:connected")
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, members)
}

func TestStore_ConnectedPeopleStayConnected(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Request(ctx, "me", "p3")
	require.NoError(t, err)
	_, err = s.Accept(ctx, "me", "p3")
	require.NoError(t, err)

	for name, op := range map[string]func(context.Context, string, string) (Status, error){
		"request": s.Request,
		"cancel":  s.Cancel,
		"accept":  s.Accept,
	} {
		t.Run(name, func(t *testing.T) {
			status, err := op(ctx, "me", "p3")
			require.NoError(t, err)
			assert.Equal(t, StatusConnected, status)
		})
	}

	got, err := s.Load(ctx, "me")
	require.NoError(t, err)
	assert.Empty(t, got.Pending)
	assert.Equal(t, []string{"p3"}, got.Connected)
}

func TestStore_InvalidOperations(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Request(ctx, "me", "me")
	assert.ErrorIs(t, err, ErrSelfConnection)

	_, err = s.Accept(ctx, "me", "p4")
	assert.ErrorIs(t, err, ErrNoPendingRequest)

	status, err := s.Cancel(ctx, "me", "p4")
	require.NoError(t, err)
	assert.Equal(t, StatusNone, status)
}

func TestStore_LoadEmpty(t *testing.T) {
	s, _, _ := newTestStore(t)

	got, err := s.Load(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, got.Pending)
	assert.Empty(t, got.Connected)
}

func TestStore_RedisErrors(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	s := NewStore(rdb, "net", logger.NewTestLogger(t))
	f := NewFavorites(rdb, "fav")
	ctx := context.Background()

	mock.ExpectSIsMember("net:u:connected", "p").SetErr(errors.New("i/o timeout"))
	_, err := s.Request(ctx, "u", "p")
	assert.ErrorIs(t, err, ErrStoreFailed)

	mock.ExpectSMembers("net:u:pending").SetErr(errors.New("LOADING"))
	_, err = s.Load(ctx, "u")
	assert.ErrorIs(t, err, ErrStoreFailed)

	mock.ExpectSRem("fav:u", "c1").SetErr(errors.New("READONLY"))
	_, err = f.Toggle(ctx, "u", "c1")
	assert.ErrorIs(t, err, ErrStoreFailed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Favorites
// ==========================

func TestFavorites_Toggle(t *testing.T) {
	_, f, _ := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		companyID string
		want      bool
		list      []string
	}{
		{companyID: "c2", want: true, list: []string{"c2"}},
		{companyID: "c1", want: true, list: []string{"c1", "c2"}},
		{companyID: "c2", want: false, list: []string{"c1"}},
		{companyID: "c2", want: true, list: []string{"c1", "c2"}},
	}

	for _, tt := range tests {
		starred, err := f.Toggle(ctx, "me", tt.companyID)
		require.NoError(t, err)
		assert.Equal(t, tt.want, starred, tt.companyID)

		list, err := f.List(ctx, "me")
		require.NoError(t, err)
		assert.Equal(t, tt.list, list)
	}
}

func TestFavorites_ListEmpty(t *testing.T) {
	_, f, _ := newTestStore(t)

	list, err := f.List(context.Background(), "me")
	require.NoError(t, err)
	assert.Empty(t, list)
}
