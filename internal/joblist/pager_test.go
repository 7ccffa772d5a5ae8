package joblist_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmate/careers-service/internal/config"
	"jobmate/careers-service/internal/joblist"
	"jobmate/careers-service/internal/model"
)

// ── Fakes ──────────────────────────────────────────────────────────────────

type call struct {
	filter string
	start  int
}

// fakeSearcher returns pages of the requested sizes in order, numbering job
// ids from the requested offset so order can be asserted.
type fakeSearcher struct {
	mu    sync.Mutex
	sizes []int
	err   error
	calls []call
}

func (f *fakeSearcher) GetJobs(_ context.Context, filter string, start int) (*model.JobPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{filter, start})
	if f.err != nil {
		return nil, f.err
	}
	n := f.sizes[0]
	if len(f.sizes) > 1 {
		f.sizes = f.sizes[1:]
	}
	return pageOf(start, n), nil
}

func pageOf(start, n int) *model.JobPage {
	jobs := make([]model.Job, n)
	for i := range jobs {
		jobs[i] = model.Job{ID: int64(start + i + 1)}
	}
	return &model.JobPage{Data: jobs, Count: n, Start: start, Total: 1000}
}

type recordingListener struct {
	mu      sync.Mutex
	loading []bool
	metas   []joblist.Meta
}

func (l *recordingListener) LoadingChanged(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = append(l.loading, v)
}

func (l *recordingListener) MetaChanged(m joblist.Meta) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.metas = append(l.metas, m)
}

var settings = &config.Settings{CompanyName: "Acme"}

func ids(jobs []model.Job) []int64 {
	out := make([]int64, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID
	}
	return out
}

// ── Replace vs append ──────────────────────────────────────────────────────

func TestLoad_FreshLoadReplaces(t *testing.T) {
	s := &fakeSearcher{sizes: []int{30, 30, 5}}
	p := joblist.NewPager(s, settings, nil, nil)
	ctx := context.Background()

	require.NoError(t, p.Load(ctx, false))
	require.NoError(t, p.LoadMore(ctx))
	require.Len(t, p.Snapshot().Jobs, 60)

	require.NoError(t, p.Load(ctx, false))
	v := p.Snapshot()
	assert.Equal(t, 0, v.Start)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids(v.Jobs))
}

func TestLoadMore_AppendsInOrder(t *testing.T) {
	s := &fakeSearcher{sizes: []int{30, 17}}
	p := joblist.NewPager(s, settings, nil, nil)
	ctx := context.Background()

	require.NoError(t, p.Load(ctx, false))
	before := p.Snapshot().Jobs
	require.NoError(t, p.LoadMore(ctx))
	after := p.Snapshot()

	assert.Len(t, after.Jobs, len(before)+17)
	assert.Equal(t, ids(before), ids(after.Jobs[:len(before)]))
	for i, j := range after.Jobs {
		assert.Equal(t, int64(i+1), j.ID, "position %d", i)
	}
	assert.Equal(t, 30, after.Start)
	assert.Equal(t, []call{{"", 0}, {"", 30}}, s.calls)
}

// ── More available heuristic ───────────────────────────────────────────────

func TestMoreAvailable(t *testing.T) {
	cases := []struct {
		size int
		want bool
	}{
		{30, true},
		{17, false},
		{0, false},
		{29, false},
	}
	for _, c := range cases {
		p := joblist.NewPager(&fakeSearcher{sizes: []int{c.size}}, settings, nil, nil)
		require.NoError(t, p.Load(context.Background(), false))
		assert.Equal(t, c.want, p.Snapshot().MoreAvailable, "page of %d", c.size)
	}
}

func TestMoreAvailable_ExactMultipleCostsOneEmptyFetch(t *testing.T) {
	s := &fakeSearcher{sizes: []int{30, 0}}
	p := joblist.NewPager(s, settings, nil, nil)
	ctx := context.Background()

	require.NoError(t, p.Load(ctx, false))
	assert.True(t, p.Snapshot().MoreAvailable)
	require.NoError(t, p.LoadMore(ctx))
	v := p.Snapshot()
	assert.False(t, v.MoreAvailable)
	assert.Len(t, v.Jobs, 30)
}

// ── Filter changes ─────────────────────────────────────────────────────────

func TestSetFilter_ResetsToFirstPage(t *testing.T) {
	s := &fakeSearcher{sizes: []int{30, 30, 3}}
	p := joblist.NewPager(s, settings, nil, nil)
	ctx := context.Background()

	require.NoError(t, p.Load(ctx, false))
	require.NoError(t, p.LoadMore(ctx))
	require.NoError(t, p.SetFilter(ctx, "employmentType:Contract"))

	v := p.Snapshot()
	assert.Equal(t, "employmentType:Contract", v.Filter)
	assert.Equal(t, 0, v.Start)
	assert.Len(t, v.Jobs, 3)
	assert.Equal(t, call{"employmentType:Contract", 0}, s.calls[2])
}

// ── Side effects ───────────────────────────────────────────────────────────

func TestLoad_EmitsLoadingAndMeta(t *testing.T) {
	l := &recordingListener{}
	p := joblist.NewPager(&fakeSearcher{sizes: []int{4}}, settings, l, nil)

	assert.True(t, p.Snapshot().Loading, "a pager starts in the loading state")
	require.NoError(t, p.Load(context.Background(), false))

	assert.Equal(t, []bool{true, false}, l.loading)
	require.Len(t, l.metas, 1)
	assert.Equal(t, "Acme - Careers", l.metas[0].Title)
	for _, tag := range []string{"og:description", "twitter:description", "description"} {
		assert.Equal(t, "View our careers", l.metas[0].Tags[tag])
	}
	v := p.Snapshot()
	assert.False(t, v.Loading)
	assert.Equal(t, 1000, v.Total)
	assert.Equal(t, "Acme - Careers", v.Meta.Title)
}

func TestLoad_ErrorRestoresOffset(t *testing.T) {
	s := &fakeSearcher{sizes: []int{30}}
	l := &recordingListener{}
	p := joblist.NewPager(s, settings, l, nil)
	ctx := context.Background()

	require.NoError(t, p.Load(ctx, false))
	s.err = errors.New("upstream down")
	err := p.LoadMore(ctx)
	assert.ErrorIs(t, err, s.err)

	v := p.Snapshot()
	assert.Equal(t, 0, v.Start)
	assert.Len(t, v.Jobs, 30)
	assert.False(t, v.Loading)
	assert.Equal(t, []bool{true, false, true, false}, l.loading)

	s.err = nil
	require.NoError(t, p.LoadMore(ctx))
	assert.Equal(t, call{"", 30}, s.calls[len(s.calls)-1])
}

func TestSetFilter_ErrorStillResets(t *testing.T) {
	s := &fakeSearcher{sizes: []int{30, 30, 30, 4}}
	p := joblist.NewPager(s, settings, nil, nil)
	ctx := context.Background()

	require.NoError(t, p.Load(ctx, false))
	require.NoError(t, p.LoadMore(ctx))
	require.NoError(t, p.LoadMore(ctx))
	require.Len(t, p.Snapshot().Jobs, 90)

	s.err = errors.New("upstream down")
	assert.ErrorIs(t, p.SetFilter(ctx, "new"), s.err)

	v := p.Snapshot()
	assert.Equal(t, "new", v.Filter)
	assert.Equal(t, 0, v.Start)
	assert.Empty(t, v.Jobs, "jobs of the previous filter are dropped")
	assert.False(t, v.MoreAvailable)

	s.err = nil
	require.NoError(t, p.SetFilter(ctx, "new"))
	v = p.Snapshot()
	assert.Equal(t, call{"new", 0}, s.calls[len(s.calls)-1])
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(v.Jobs))
}

// ── Request generation guard ───────────────────────────────────────────────

// blockingSearcher parks the first call until released.
type blockingSearcher struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingSearcher) GetJobs(_ context.Context, filter string, start int) (*model.JobPage, error) {
	first := false
	b.once.Do(func() { first = true })
	if first {
		close(b.started)
		<-b.release
		return pageOf(start, 30), nil
	}
	return pageOf(500, 2), nil
}

func TestLoad_StaleResponseIsDiscarded(t *testing.T) {
	b := &blockingSearcher{started: make(chan struct{}), release: make(chan struct{})}
	p := joblist.NewPager(b, settings, nil, nil)
	ctx := context.Background()

	errc := make(chan error, 1)
	go func() { errc <- p.SetFilter(ctx, "old") }()
	<-b.started

	require.NoError(t, p.SetFilter(ctx, "new"))
	close(b.release)
	assert.ErrorIs(t, <-errc, joblist.ErrStale)

	v := p.Snapshot()
	assert.Equal(t, "new", v.Filter)
	assert.Equal(t, []int64{501, 502}, ids(v.Jobs))
	assert.False(t, v.MoreAvailable)
}

func TestSnapshot_IsACopy(t *testing.T) {
	p := joblist.NewPager(&fakeSearcher{sizes: []int{2}}, settings, nil, nil)
	require.NoError(t, p.Load(context.Background(), false))

	v := p.Snapshot()
	v.Jobs[0].ID = 99
	assert.Equal(t, int64(1), p.Snapshot().Jobs[0].ID)
}
