package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ineludible/trazos-api/internal/api/metrics"
	"github.com/ineludible/trazos-api/internal/core/ports"
)

const rankingTTL = 30 * time.Second

// RankingCache stores the ordered ranking snapshot per metric. The snapshot
// is the service's already-sorted result, so the deterministic tie-break is
// preserved through the cache. A short TTL plus invalidation on every resync
// bounds staleness; a slightly stale ranking read is acceptable.
type RankingCache struct {
	client *redis.Client
}

func NewRankingCache(client *redis.Client) *RankingCache {
	return &RankingCache{client: client}
}

// Get returns the cached snapshot for metric; ok is false on a miss.
func (c *RankingCache) Get(ctx context.Context, metric ports.Metric) ([]ports.RankedUser, bool, error) {
	raw, err := c.client.Get(ctx, c.key(metric)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.RankingCacheTotal.WithLabelValues("miss").Inc()
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("ranking cache get: %w", err)
	}

	var rows []ports.RankedUser
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, false, fmt.Errorf("ranking cache decode: %w", err)
	}
	metrics.RankingCacheTotal.WithLabelValues("hit").Inc()
	return rows, true, nil
}

// Set stores the snapshot for metric with the cache TTL.
func (c *RankingCache) Set(ctx context.Context, metric ports.Metric, rows []ports.RankedUser) error {
	raw, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("ranking cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(metric), raw, rankingTTL).Err()
}

// Invalidate drops the snapshots for every metric. Called after each resync.
func (c *RankingCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key(ports.MetricTraces), c.key(ports.MetricWords)).Err()
}

func (c *RankingCache) key(metric ports.Metric) string {
	return "ranking:" + string(metric)
}
