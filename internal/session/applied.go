// Package session keeps per-visitor state for the careers site.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces the applied-jobs list of a session.
const KeyPrefix = "APPLIED_JOBS_KEY"

const maxWatchRetries = 5

// NewID returns a fresh session id.
func NewID() string { return uuid.NewString() }

// ValidID reports whether id looks like one NewID produced.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Key returns the Redis key of a session's applied-jobs list.
func Key(sessionID string) string { return KeyPrefix + ":" + sessionID }

// AppliedStore records the jobs a session has applied to, as a JSON array
// of job ids that expires with the session.
type AppliedStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewAppliedStore returns a store whose entries live for ttl after the last
// write.
func NewAppliedStore(rdb *redis.Client, ttl time.Duration) *AppliedStore {
	return &AppliedStore{rdb: rdb, ttl: ttl}
}

// Add appends jobID to the session's list, creating it when absent. A job
// already on the list is not added twice.
func (s *AppliedStore) Add(ctx context.Context, sessionID string, jobID int64) error {
	key := Key(sessionID)
	txf := func(tx *redis.Tx) error {
		ids, err := decode(tx.Get(ctx, key))
		if err != nil {
			return err
		}
		if !slices.Contains(ids, jobID) {
			ids = append(ids, jobID)
		}
		data, err := json.Marshal(ids)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		return err
	}

	for range maxWatchRetries {
		err := s.rdb.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return fmt.Errorf("add applied job %d: too much contention on %s", jobID, key)
}

// List returns the session's applied job ids in the order they were added.
func (s *AppliedStore) List(ctx context.Context, sessionID string) ([]int64, error) {
	return decode(s.rdb.Get(ctx, Key(sessionID)))
}

// Has reports whether the session applied to jobID.
func (s *AppliedStore) Has(ctx context.Context, sessionID string, jobID int64) (bool, error) {
	ids, err := s.List(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, jobID), nil
}

func decode(cmd *redis.StringCmd) ([]int64, error) {
	data, err := cmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return []int64{}, nil
	}
	if err != nil {
		return nil, err
	}
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decode applied jobs: %w", err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}
