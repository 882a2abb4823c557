package arxiv

import (
	"context"
	"sync"
	"time"

	"github.com/bobinette/papersync/retry"
)

// Gate spaces requests by a minimum interval. Callers arriving too early
// wait for their turn, no request is ever dropped.
type Gate struct {
	interval time.Duration

	mu   sync.Mutex
	last time.Time

	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

func NewGate(interval time.Duration) *Gate {
	return &Gate{
		interval: interval,
		now:      time.Now,
		sleep:    retry.Sleep,
	}
}

// Wait blocks until a request can be sent. It returns early with an error if
// ctx is done in the meantime.
func (g *Gate) Wait(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.last.IsZero() {
		if elapsed := g.now().Sub(g.last); elapsed < g.interval {
			if err := g.sleep(ctx, g.interval-elapsed); err != nil {
				return err
			}
		}
	}

	g.last = g.now()
	return nil
}
