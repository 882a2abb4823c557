package syncer

import (
	"context"
	"sync"

	"github.com/bobinette/papersync/errors"
)

// ErrBusy is returned by Runner.Run while another run is going on.
var ErrBusy = errors.New("a sync is already running", errors.Conflict())

type Syncer interface {
	Sync(ctx context.Context) (Report, error)
}

// Runner lets a single run of a Syncer go through at a time. Triggers that
// may fire concurrently, the HTTP handler and the scheduler, go through it.
type Runner struct {
	mu     sync.Mutex
	syncer Syncer
}

func NewRunner(s Syncer) *Runner {
	return &Runner{syncer: s}
}

// Run starts a run unless one is already in progress, in which case it
// returns ErrBusy right away.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	if !r.mu.TryLock() {
		return Report{}, ErrBusy
	}
	defer r.mu.Unlock()

	return r.syncer.Sync(ctx)
}
