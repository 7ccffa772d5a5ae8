// Package db provides database connection helpers.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ecodeclub/ekit/retry"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pingTimeout = 5 * time.Second
	maxInterval = 10 * time.Second
	maxRetries  = 10
)

// NewPostgresPool creates a pgxpool connection pool and waits until the
// database answers a ping, backing off exponentially between attempts.
func NewPostgresPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := waitFor(ctx, "postgres", pool.Ping); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// waitFor retries ping until it succeeds, the retry budget is exhausted or
// ctx is cancelled.
func waitFor(ctx context.Context, name string, ping func(context.Context) error) error {
	strategy, err := retry.NewExponentialBackoffRetryStrategy(time.Second, maxInterval, maxRetries)
	if err != nil {
		return fmt.Errorf("%s retry strategy: %w", name, err)
	}

	for {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err = ping(pingCtx)
		cancel()
		if err == nil {
			return nil
		}

		next, ok := strategy.Next()
		if !ok {
			return fmt.Errorf("%s ping failed: %w", name, err)
		}
		slog.Warn("waiting for backing store", "store", name, "retryIn", next, "err", err)

		select {
		case <-time.After(next):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
