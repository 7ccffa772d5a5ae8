// Package scheduler runs the periodic housekeeping of the careers service:
// keeping the landing page of the job list warm in the search cache and
// dropping per-session state nobody has touched for a while.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

const evictSpec = "@every 1m"

// Warmer refetches one search page into the cache.
type Warmer interface {
	Refresh(ctx context.Context, filter string, start int) error
}

// Evicter drops entries idle for longer than the given duration and reports
// how many went. Len is the number of entries still held.
type Evicter interface {
	Evict(idle time.Duration) int
	Len() int
}

// Scheduler wraps robfig/cron.
type Scheduler struct {
	cron     *cron.Cron
	warmer   Warmer
	evicters map[string]Evicter
	idle     time.Duration
	warmSpec string
}

// New returns a Scheduler that warms the first unfiltered page every
// warmInterval and evicts state idle for longer than idle.
func New(warmer Warmer, warmInterval, idle time.Duration, evicters map[string]Evicter) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLogger(cron.DefaultLogger)),
		warmer:   warmer,
		evicters: evicters,
		idle:     idle,
		warmSpec: fmt.Sprintf("@every %s", warmInterval),
	}
}

// Start registers both jobs and starts the cron. The cache is also warmed
// once right away so the first visitor does not pay for the upstream call.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.warmSpec, func() { s.Warm(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc warm: %w", err)
	}
	if _, err := s.cron.AddFunc(evictSpec, func() { s.EvictIdle() }); err != nil {
		return fmt.Errorf("cron.AddFunc evict: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started — warm: %s, evict: %s", s.warmSpec, evictSpec)

	go s.Warm(ctx)
	return nil
}

// Stop shuts the cron down and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("[scheduler] Cron stopped")
}

// Warm refreshes the first page of the unfiltered job list.
func (s *Scheduler) Warm(ctx context.Context) {
	if err := s.warmer.Refresh(ctx, "", 0); err != nil {
		log.Printf("[scheduler] Cache warm-up error: %v", err)
		return
	}
	log.Println("[scheduler] Job list cache warmed")
}

// EvictIdle drops idle per-session state from every registry and returns
// how many entries remain across all of them.
func (s *Scheduler) EvictIdle() int {
	remaining := 0
	for name, e := range s.evicters {
		n, left := e.Evict(s.idle), e.Len()
		if n > 0 {
			log.Printf("[scheduler] Evicted %d idle %s — %d left", n, name, left)
		}
		remaining += left
	}
	return remaining
}
