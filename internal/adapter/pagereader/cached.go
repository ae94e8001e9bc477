package pagereader

import (
	"context"
	"log/slog"
	"time"

	"github.com/user/scraper-service/internal/entity"
	"github.com/user/scraper-service/internal/repository"
)

// CachedReader wraps any PageReader with a short-lived fetch cache, so
// repeat reads of a URL inside the TTL skip the network. Cache errors are
// never fatal; the reader falls through to a live fetch. A nil cache
// disables caching entirely.
type CachedReader struct {
	inner repository.PageReader
	cache repository.PageCache
	ttl   time.Duration
}

// NewCachedReader wraps inner with the given cache.
func NewCachedReader(inner repository.PageReader, cache repository.PageCache, ttl time.Duration) *CachedReader {
	return &CachedReader{inner: inner, cache: cache, ttl: ttl}
}

func (r *CachedReader) Read(ctx context.Context, url string) (*entity.Page, error) {
	if r.cache == nil {
		return r.inner.Read(ctx, url)
	}

	if cached, err := r.cache.Get(ctx, url); err != nil {
		slog.Warn("Page cache lookup failed", "url", url, "error", err)
	} else if cached != nil {
		slog.Debug("Page cache hit", "url", url)
		return cached, nil
	}

	page, err := r.inner.Read(ctx, url)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, page, r.ttl); err != nil {
		slog.Warn("Failed to cache fetched page", "url", url, "error", err)
	}
	return page, nil
}
