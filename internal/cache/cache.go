package cache

import (
	"context"
	"time"
)

// Keys of the cached dashboards
const (
	KeyOrderDashboard   = "veggie:stats:orders"
	KeyExpenseDashboard = "veggie:stats:expenses"
)

// StatsCache stores JSON-serialisable dashboard snapshots. Writers invalidate
// the keys they affect, so a hit is never older than the last write.
type StatsCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

type NoopStatsCache struct{}

func (NoopStatsCache) Get(_ context.Context, _ string, _ any) (bool, error) {
	return false, nil
}

func (NoopStatsCache) Set(_ context.Context, _ string, _ any, _ time.Duration) error {
	return nil
}

func (NoopStatsCache) Invalidate(_ context.Context, _ ...string) error {
	return nil
}
