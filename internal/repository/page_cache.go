package repository

import (
	"context"
	"time"

	"github.com/user/scraper-service/internal/entity"
)

// PageCache defines the interface for short-lived caching of fetched pages,
// so repeat scrapes of a URL inside the TTL skip the network. A miss is
// reported as (nil, nil), not an error.
type PageCache interface {
	Get(ctx context.Context, url string) (*entity.Page, error)
	Set(ctx context.Context, page *entity.Page, expiry time.Duration) error
}
