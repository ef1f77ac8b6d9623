package cache

import (
	"context"
	"time"

	"QuoteLens/internal/domain/models"
	domrepo "QuoteLens/internal/domain/repository"
	pkgcache "QuoteLens/pkg/cache"
)

// TableCache adapts the generic cache service to normalized-series
// memoization. Entries expire after ttl; a miss or decode failure just
// means the pipeline re-fetches and re-normalizes.
type TableCache struct {
	svc pkgcache.Service
	ttl time.Duration
}

func NewTableCache(svc pkgcache.Service, ttl time.Duration) *TableCache {
	return &TableCache{svc: svc, ttl: ttl}
}

func (c *TableCache) Get(ctx context.Context, key string) (*models.NormalizedSeries, bool) {
	var series models.NormalizedSeries
	if err := c.svc.Get(ctx, key, &series); err != nil {
		return nil, false
	}
	return &series, true
}

func (c *TableCache) Set(ctx context.Context, key string, s *models.NormalizedSeries) {
	// best effort; the pipeline never depends on the write landing
	_ = c.svc.Set(ctx, key, s, c.ttl)
}

var _ domrepo.TableCache = (*TableCache)(nil)
