// internal/network/favorites.go
package network

import (
	"context"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

const DefaultFavoritesPrefix = "technet_favorites"

// Favorites keeps the set of company ids a member starred.
type Favorites struct {
	redis  redis.Cmdable
	prefix string
}

func NewFavorites(rdb redis.Cmdable, prefix string) *Favorites {
	if prefix == "" {
		prefix = DefaultFavoritesPrefix
	}
	return &Favorites{redis: rdb, prefix: prefix}
}

func (f *Favorites) key(userID string) string { return f.prefix + ":" + userID }

// Toggle removes companyID when starred and adds it otherwise. It reports
// whether the company is starred afterwards.
func (f *Favorites) Toggle(ctx context.Context, userID, companyID string) (bool, error) {
	removed, err := f.redis.SRem(ctx, f.key(userID), companyID).Result()
	if err != nil {
		return false, fmt.Errorf("%w: toggle %s: %v", ErrStoreFailed, companyID, err)
	}
	if removed > 0 {
		return false, nil
	}
	if err := f.redis.SAdd(ctx, f.key(userID), companyID).Err(); err != nil {
		return false, fmt.Errorf("%w: toggle %s: %v", ErrStoreFailed, companyID, err)
	}
	return true, nil
}

func (f *Favorites) List(ctx context.Context, userID string) ([]string, error) {
	ids, err := f.redis.SMembers(ctx, f.key(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %v", ErrStoreFailed, userID, err)
	}
	sort.Strings(ids)
	return ids, nil
}
