package search

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"jobmate/careers-service/internal/metrics"
	"jobmate/careers-service/internal/model"
)

// CachedSearcher is a read-through Redis cache in front of a Searcher.
// Cache failures never fail a search; they only cost an upstream call.
type CachedSearcher struct {
	next    Searcher
	rdb     *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics
}

// NewCachedSearcher wraps next with a page cache of the given TTL.
func NewCachedSearcher(next Searcher, rdb *redis.Client, ttl time.Duration, m *metrics.Metrics) *CachedSearcher {
	return &CachedSearcher{next: next, rdb: rdb, ttl: ttl, metrics: m}
}

// GetJobs returns the cached page when present, otherwise fetches and stores it.
func (c *CachedSearcher) GetJobs(ctx context.Context, filter string, start int) (*model.JobPage, error) {
	key := cacheKey(filter, start)

	if data, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var page model.JobPage
		if err := json.Unmarshal(data, &page); err == nil {
			c.count("hit")
			return &page, nil
		}
	}
	c.count("miss")

	page, err := c.next.GetJobs(ctx, filter, start)
	if err != nil {
		return nil, err
	}
	if err := c.store(ctx, key, page); err != nil {
		slog.Warn("search cache write failed", "key", key, "err", err)
	}
	return page, nil
}

// Refresh bypasses the cache, fetches the page and overwrites the entry.
// The scheduler uses it to keep the landing page warm.
func (c *CachedSearcher) Refresh(ctx context.Context, filter string, start int) error {
	page, err := c.next.GetJobs(ctx, filter, start)
	if err != nil {
		return err
	}
	return c.store(ctx, cacheKey(filter, start), page)
}

func (c *CachedSearcher) store(ctx context.Context, key string, page *model.JobPage) error {
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("marshal page: %w", err)
	}
	return c.rdb.Set(ctx, key, data, c.ttl).Err()
}

func (c *CachedSearcher) count(result string) {
	if c.metrics != nil {
		c.metrics.CacheLookups.WithLabelValues(result).Inc()
	}
}

func cacheKey(filter string, start int) string {
	hash := sha256.Sum256([]byte(strings.TrimSpace(filter)))
	return fmt.Sprintf("careers:jobs:%x:%d", hash[:8], start)
}
