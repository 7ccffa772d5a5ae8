// Package joblist implements the paginated job list of the careers site.
//
// A Pager holds one visible collection. A fresh load (offset 0) replaces the
// collection; "load more" advances the offset by one page and appends the new
// page in server order. Whether more pages exist is inferred from the size
// of the last page: a full page means there may be another one.
package joblist

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"jobmate/careers-service/internal/config"
	"jobmate/careers-service/internal/metrics"
	"jobmate/careers-service/internal/model"
	"jobmate/careers-service/internal/search"
)

// PageSize is the number of jobs fetched per call.
const PageSize = search.PageSize

const metaDescription = "View our careers"

// ErrStale is returned by Load when a newer request was issued while this one
// was in flight. Its result has been discarded.
var ErrStale = errors.New("joblist: response superseded by a newer request")

// Meta is the document metadata of the job list view.
type Meta struct {
	Title string            `json:"title"`
	Tags  map[string]string `json:"tags"`
}

// View is an immutable snapshot of a Pager.
type View struct {
	Filter        string      `json:"filter"`
	Jobs          []model.Job `json:"jobs"`
	Total         int         `json:"total"`
	Start         int         `json:"start"`
	MoreAvailable bool        `json:"moreAvailable"`
	Loading       bool        `json:"loading"`
	Meta          Meta        `json:"meta"`
}

// Listener observes a Pager. Callbacks run outside the pager lock.
type Listener interface {
	LoadingChanged(loading bool)
	MetaChanged(meta Meta)
}

type nopListener struct{}

func (nopListener) LoadingChanged(bool) {}
func (nopListener) MetaChanged(Meta)    {}

// Pager fetches job pages and accumulates them.
type Pager struct {
	searcher search.Searcher
	settings *config.Settings
	listener Listener
	metrics  *metrics.Metrics

	mu            sync.Mutex
	filter        string
	start         int
	jobs          []model.Job
	total         int
	moreAvailable bool
	loading       bool
	meta          Meta
	generation    uint64
}

// NewPager returns a Pager that has not fetched anything yet. listener and m
// may be nil.
func NewPager(s search.Searcher, settings *config.Settings, listener Listener, m *metrics.Metrics) *Pager {
	if listener == nil {
		listener = nopListener{}
	}
	return &Pager{
		searcher:      s,
		settings:      settings,
		listener:      listener,
		metrics:       m,
		jobs:          []model.Job{},
		moreAvailable: true,
		loading:       true,
	}
}

// SetFilter applies a new filter: the pager is reset and refetched from
// offset 0.
func (p *Pager) SetFilter(ctx context.Context, filter string) error {
	p.mu.Lock()
	p.filter = filter
	p.mu.Unlock()
	return p.Load(ctx, false)
}

// LoadMore fetches the next page and appends it.
func (p *Pager) LoadMore(ctx context.Context) error {
	return p.Load(ctx, true)
}

// Load fetches one page. Without loadMore the offset resets to 0 and the
// collection is replaced; with loadMore the offset advances by PageSize and
// the page is appended.
//
// Only the latest request is applied: a response that arrives after a newer
// Load started is dropped and ErrStale is returned. When a load-more fails
// the offset is restored so the same page can be requested again; when a
// fresh load fails the pager stays reset at offset 0 with an empty
// collection.
func (p *Pager) Load(ctx context.Context, loadMore bool) error {
	p.mu.Lock()
	prevStart := p.start
	if loadMore {
		p.start += PageSize
	} else {
		p.start = 0
	}
	start, filter := p.start, p.filter
	p.generation++
	gen := p.generation
	p.meta = p.buildMeta()
	meta := p.meta
	p.loading = true
	p.mu.Unlock()

	p.listener.MetaChanged(meta)
	p.listener.LoadingChanged(true)

	page, err := p.searcher.GetJobs(ctx, filter, start)

	p.mu.Lock()
	if gen != p.generation {
		p.mu.Unlock()
		if p.metrics != nil {
			p.metrics.StaleResponses.Inc()
		}
		return ErrStale
	}
	p.loading = false
	if err != nil {
		if loadMore {
			p.start = prevStart
		} else {
			// The collection belonged to the previous filter.
			p.jobs = []model.Job{}
			p.total = 0
			p.moreAvailable = false
		}
		p.mu.Unlock()
		p.listener.LoadingChanged(false)
		return fmt.Errorf("get jobs (start=%d): %w", start, err)
	}

	if start > 0 {
		p.jobs = append(slices.Clip(p.jobs), page.Data...)
	} else {
		p.jobs = slices.Clone(page.Data)
	}
	p.total = page.Total
	p.moreAvailable = page.Count == PageSize
	p.mu.Unlock()

	p.listener.LoadingChanged(false)
	return nil
}

// Snapshot returns a copy of the current state.
func (p *Pager) Snapshot() View {
	p.mu.Lock()
	defer p.mu.Unlock()

	return View{
		Filter:        p.filter,
		Jobs:          slices.Clone(p.jobs),
		Total:         p.total,
		Start:         p.start,
		MoreAvailable: p.moreAvailable,
		Loading:       p.loading,
		Meta:          p.meta,
	}
}

// buildMeta must be called with mu held.
func (p *Pager) buildMeta() Meta {
	return Meta{
		Title: p.settings.PageTitle(),
		Tags: map[string]string{
			"og:description":      metaDescription,
			"twitter:description": metaDescription,
			"description":         metaDescription,
		},
	}
}
