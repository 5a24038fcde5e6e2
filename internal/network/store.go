// internal/network/store.go
package network

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"technet-workers/internal/common/logger"
)

const DefaultKeyPrefix = "technet_network"

var (
	ErrStoreFailed      = errors.New("NETWORK_STORE_FAILED")
	ErrSelfConnection   = errors.New("NETWORK_SELF_CONNECTION")
	ErrNoPendingRequest = errors.New("NETWORK_NO_PENDING_REQUEST")
)

// Status is where one person stands in a member's network.
type Status string

const (
	StatusNone      Status = "none"
	StatusPending   Status = "pending"
	StatusConnected Status = "connected"
)

// Connections is one member's network. Both lists are sorted.
type Connections struct {
	Pending   []string `json:"pending"`
	Connected []string `json:"connected"`
}

// Store keeps two redis sets per member: people with a pending request and
// people already connected. A person is never in both.
type Store struct {
	redis  redis.Cmdable
	prefix string
	logger logger.Logger
}

func NewStore(rdb redis.Cmdable, prefix string, log logger.Logger) *Store {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Store{
		redis:  rdb,
		prefix: prefix,
		logger: log.WithFields(map[string]interface{}{"component": "network-store"}),
	}
}

func (s *Store) pendingKey(userID string) string   { return s.prefix + ":" + userID + ":pending" }
func (s *Store) connectedKey(userID string) string { return s.prefix + ":" + userID + ":connected" }

// Request records a connection request to personID. Requesting someone
// already connected changes nothing.
func (s *Store) Request(ctx context.Context, userID, personID string) (Status, error) {
	if userID == personID {
		return StatusNone, ErrSelfConnection
	}
	connected, err := s.isConnected(ctx, userID, personID)
	if err != nil || connected {
		return StatusConnected, err
	}
	if err := s.redis.SAdd(ctx, s.pendingKey(userID), personID).Err(); err != nil {
		return StatusNone, fmt.Errorf("%w: request %s: %v", ErrStoreFailed, personID, err)
	}
	s.logger.Debug("connection requested", map[string]interface{}{"userId": userID, "personId": personID})
	return StatusPending, nil
}

// Cancel withdraws a pending request. Cancelling without one is a no-op and
// existing connections are left alone.
func (s *Store) Cancel(ctx context.Context, userID, personID string) (Status, error) {
	connected, err := s.isConnected(ctx, userID, personID)
	if err != nil || connected {
		return StatusConnected, err
	}
	if err := s.redis.SRem(ctx, s.pendingKey(userID), personID).Err(); err != nil {
		return StatusNone, fmt.Errorf("%w: cancel %s: %v", ErrStoreFailed, personID, err)
	}
	return StatusNone, nil
}

// Accept turns a pending request into a connection. Accepting an existing
// connection again succeeds; accepting with nothing pending does not.
func (s *Store) Accept(ctx context.Context, userID, personID string) (Status, error) {
	connected, err := s.isConnected(ctx, userID, personID)
	if err != nil || connected {
		return StatusConnected, err
	}
	pending, err := s.redis.SIsMember(ctx, s.pendingKey(userID), personID).Result()
	if err != nil {
		return StatusNone, fmt.Errorf("%w: accept %s: %v", ErrStoreFailed, personID, err)
	}
	if !pending {
		return StatusNone, fmt.Errorf("%w: %s", ErrNoPendingRequest, personID)
	}

	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SRem(ctx, s.pendingKey(userID), personID)
		pipe.SAdd(ctx, s.connectedKey(userID), personID)
		return nil
	})
	if err != nil {
		return StatusPending, fmt.Errorf("%w: accept %s: %v", ErrStoreFailed, personID, err)
	}
	s.logger.Debug("connection accepted", map[string]interface{}{"userId": userID, "personId": personID})
	return StatusConnected, nil
}

func (s *Store) Load(ctx context.Context, userID string) (Connections, error) {
	pending, err := s.redis.SMembers(ctx, s.pendingKey(userID)).Result()
	if err != nil {
		return Connections{}, fmt.Errorf("%w: load %s: %v", ErrStoreFailed, userID, err)
	}
	connected, err := s.redis.SMembers(ctx, s.connectedKey(userID)).Result()
	if err != nil {
		return Connections{}, fmt.Errorf("%w: load %s: %v", ErrStoreFailed, userID, err)
	}
	sort.Strings(pending)
	sort.Strings(connected)
	return Connections{Pending: pending, Connected: connected}, nil
}

func (s *Store) isConnected(ctx context.Context, userID, personID string) (bool, error) {
	ok, err := s.redis.SIsMember(ctx, s.connectedKey(userID), personID).Result()
	if err != nil {
		return false, fmt.Errorf("%w: lookup %s: %v", ErrStoreFailed, personID, err)
	}
	return ok, nil
}
