// Package scheduler keeps the cached social-graph view fresh without
// a push channel: an immediate refresh on start, a short-interval
// ticker while the session lives, and an on-demand kick when the
// window regains focus. Every trigger funnels into the same refresh
// entry point, which is idempotent, so redundant firing is harmless.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rohitp80/CampusVibe-sub000/pkg/logger"
)

type Refresher struct {
	interval time.Duration
	refresh  func(context.Context)

	focus    chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
}

func NewRefresher(interval time.Duration, refresh func(context.Context)) *Refresher {
	return &Refresher{
		interval: interval,
		refresh:  refresh,
		focus:    make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}
}

// Run refreshes once immediately, then on every tick and focus signal
// until Stop is called or ctx is cancelled. Run returns only when the
// refresher is torn down; run it on its own goroutine.
func (r *Refresher) Run(ctx context.Context) {
	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Refresher stopped", "reason", "context cancelled")
			return
		case <-r.stop:
			logger.Debug("Refresher stopped", "reason", "explicit stop")
			return
		case <-ticker.C:
			r.refresh(ctx)
		case <-r.focus:
			r.refresh(ctx)
		}
	}
}

// Focus requests an immediate out-of-band refresh, as on window
// focus-regain. Never blocks; a pending signal coalesces.
func (r *Refresher) Focus() {
	select {
	case r.focus <- struct{}{}:
	default:
	}
}

// Stop tears the refresher down. Safe to call more than once, and
// required when the session's identifying key changes so a stale
// closure cannot refresh the wrong user's data.
func (r *Refresher) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}
