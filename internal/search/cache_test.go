package search_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmate/careers-service/internal/model"
	"jobmate/careers-service/internal/search"
)

type countingSearcher struct {
	calls int
	page  *model.JobPage
	err   error
}

func (s *countingSearcher) GetJobs(_ context.Context, _ string, start int) (*model.JobPage, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	p := *s.page
	p.Start = start
	return &p, nil
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestCachedSearcher_ReadThrough(t *testing.T) {
	_, rdb := newRedis(t)
	next := &countingSearcher{page: &model.JobPage{Data: []model.Job{{ID: 9}}, Count: 1, Total: 1}}
	c := search.NewCachedSearcher(next, rdb, time.Minute, nil)
	ctx := context.Background()

	first, err := c.GetJobs(ctx, "x", 30)
	require.NoError(t, err)
	second, err := c.GetJobs(ctx, "x", 30)
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, first, second)
	assert.Equal(t, 30, second.Start)

	// A different offset is a different entry.
	_, err = c.GetJobs(ctx, "x", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestCachedSearcher_Expires(t *testing.T) {
	mr, rdb := newRedis(t)
	next := &countingSearcher{page: &model.JobPage{Data: []model.Job{}}}
	c := search.NewCachedSearcher(next, rdb, time.Minute, nil)
	ctx := context.Background()

	_, err := c.GetJobs(ctx, "", 0)
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)
	_, err = c.GetJobs(ctx, "", 0)
	require.NoError(t, err)

	assert.Equal(t, 2, next.calls)
}

func TestCachedSearcher_ErrorNotCached(t *testing.T) {
	mr, rdb := newRedis(t)
	next := &countingSearcher{err: errors.New("upstream down")}
	c := search.NewCachedSearcher(next, rdb, time.Minute, nil)

	_, err := c.GetJobs(context.Background(), "", 0)
	assert.Error(t, err)
	assert.Empty(t, mr.Keys())
}

func TestCachedSearcher_Refresh(t *testing.T) {
	_, rdb := newRedis(t)
	next := &countingSearcher{page: &model.JobPage{Data: []model.Job{{ID: 1}}, Count: 1}}
	c := search.NewCachedSearcher(next, rdb, time.Minute, nil)
	ctx := context.Background()

	require.NoError(t, c.Refresh(ctx, "", 0))
	next.page = &model.JobPage{Data: []model.Job{{ID: 2}}, Count: 1}
	require.NoError(t, c.Refresh(ctx, "", 0))

	page, err := c.GetJobs(ctx, "", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Data[0].ID)
	assert.Equal(t, 2, next.calls)
}

func TestCachedSearcher_RedisDownFallsThrough(t *testing.T) {
	// Nothing listens on port 1.
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer rdb.Close()
	next := &countingSearcher{page: &model.JobPage{Data: []model.Job{{ID: 3}}, Count: 1}}
	c := search.NewCachedSearcher(next, rdb, time.Minute, nil)

	page, err := c.GetJobs(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Data[0].ID)
}
