package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmate/careers-service/internal/session"
)

func newStore(t *testing.T) (*miniredis.Miniredis, *session.AppliedStore) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, session.NewAppliedStore(rdb, time.Hour)
}

func TestAdd_CreatesThenAppends(t *testing.T) {
	mr, s := newStore(t)
	ctx := context.Background()

	ids, err := s.List(ctx, "sid")
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, s.Add(ctx, "sid", 42))
	got, err := mr.Get(session.Key("sid"))
	require.NoError(t, err)
	assert.Equal(t, "[42]", got)

	require.NoError(t, s.Add(ctx, "sid", 7))
	require.NoError(t, s.Add(ctx, "sid", 42))
	ids, err = s.List(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, []int64{42, 7}, ids)

	ok, err := s.Has(ctx, "sid", 7)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Has(ctx, "other", 7)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAdd_ExpiresWithSession(t *testing.T) {
	mr, s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, "sid", 1))
	assert.Equal(t, time.Hour, mr.TTL(session.Key("sid")))

	mr.FastForward(2 * time.Hour)
	ids, err := s.List(ctx, "sid")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestAdd_ConcurrentWritersKeepEveryID(t *testing.T) {
	_, s := newStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 1; i <= 4; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			assert.NoError(t, s.Add(ctx, "sid", id))
		}(int64(i))
	}
	wg.Wait()

	ids, err := s.List(ctx, "sid")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2, 3, 4}, ids)
}

func TestList_CorruptValue(t *testing.T) {
	mr, s := newStore(t)
	require.NoError(t, mr.Set(session.Key("sid"), "not json"))
	_, err := s.List(context.Background(), "sid")
	assert.Error(t, err)
	assert.Error(t, s.Add(context.Background(), "sid", 1))
}

func TestIDs(t *testing.T) {
	id := session.NewID()
	assert.True(t, session.ValidID(id))
	assert.NotEqual(t, id, session.NewID())
	assert.False(t, session.ValidID("../../etc"))
	assert.False(t, session.ValidID(""))
}
