package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/user/scraper-service/internal/entity"
	"github.com/user/scraper-service/pkg/utils"
)

const pageCachePrefix = "page:"

// PageCacheImpl provides a concrete implementation for the PageCache
// interface using Redis.
type PageCacheImpl struct {
	client *redis.Client
}

// NewPageCache creates a new instance of PageCacheImpl.
func NewPageCache(client *redis.Client) *PageCacheImpl {
	return &PageCacheImpl{client: client}
}

// generateKey creates a consistent Redis key for a given URL by hashing it.
func (r *PageCacheImpl) generateKey(url string) string {
	return fmt.Sprintf("%s%s", pageCachePrefix, utils.HashURL(url))
}

// Get returns the cached page for a URL, or (nil, nil) on a miss.
func (r *PageCacheImpl) Get(ctx context.Context, url string) (*entity.Page, error) {
	raw, err := r.client.Get(ctx, r.generateKey(url)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var page entity.Page
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Set caches a fetched page under its URL hash with the given expiry.
func (r *PageCacheImpl) Set(ctx context.Context, page *entity.Page, expiry time.Duration) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return r.client.SetEx(ctx, r.generateKey(page.URL), raw, expiry).Err()
}
