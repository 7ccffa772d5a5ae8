// Package analytics records careers-site events for downstream reporting.
package analytics

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"jobmate/careers-service/internal/metrics"
)

// Channel is the Redis channel analytics events are published on.
const Channel = "EVENT_ANALYTICS"

const publishTimeout = 2 * time.Second

// Event is the published payload.
type Event struct {
	Type  string    `json:"type"`
	Label string    `json:"label"`
	At    time.Time `json:"at"`
}

// RedisTracker publishes events to Redis. It never fails the caller.
type RedisTracker struct {
	rdb     *redis.Client
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewRedisTracker returns a tracker publishing on Channel. m may be nil.
func NewRedisTracker(rdb *redis.Client, m *metrics.Metrics) *RedisTracker {
	return &RedisTracker{rdb: rdb, metrics: m, now: time.Now}
}

// TrackEvent publishes label. The caller's cancellation does not abort the
// publish; it gets its own short deadline.
func (t *RedisTracker) TrackEvent(ctx context.Context, label string) {
	if t.metrics != nil {
		t.metrics.AnalyticsEvents.WithLabelValues(Kind(label)).Inc()
	}
	payload, err := json.Marshal(Event{Type: "EVENT_TRACKED", Label: label, At: t.now().UTC()})
	if err != nil {
		slog.Warn("marshal analytics event failed", "err", err)
		return
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := t.rdb.Publish(pctx, Channel, payload).Err(); err != nil {
		slog.Warn("publish analytics event failed", "label", label, "err", err)
	}
}

// Kind is the metric label of an event: the text before the first ':', so
// "Apply to Job: 42" counts as "Apply to Job".
func Kind(label string) string {
	kind, _, _ := strings.Cut(label, ":")
	return strings.TrimSpace(kind)
}
