package joblist

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// EventChannel carries job list UI events to the gateway SSE forwarder.
const EventChannel = "EVENT_JOB_LIST"

const publishTimeout = 2 * time.Second

// RedisListener publishes pager events for one browser session.
// Publishing is best effort: failures are logged and dropped.
type RedisListener struct {
	rdb       *redis.Client
	sessionID string
}

// NewRedisListener returns a Listener bound to sessionID.
func NewRedisListener(rdb *redis.Client, sessionID string) *RedisListener {
	return &RedisListener{rdb: rdb, sessionID: sessionID}
}

func (l *RedisListener) LoadingChanged(loading bool) {
	l.publish(map[string]any{
		"type":      "EVENT_LOADING_CHANGED",
		"sessionId": l.sessionID,
		"loading":   loading,
	})
}

func (l *RedisListener) MetaChanged(meta Meta) {
	l.publish(map[string]any{
		"type":      "EVENT_META_CHANGED",
		"sessionId": l.sessionID,
		"meta":      meta,
	})
}

func (l *RedisListener) publish(event map[string]any) {
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Warn("marshal job list event failed", "err", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := l.rdb.Publish(ctx, EventChannel, payload).Err(); err != nil {
		slog.Warn("publish job list event failed", "type", event["type"], "err", err)
	}
}
