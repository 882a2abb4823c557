// Package retry runs an operation until it succeeds, backing off
// exponentially between attempts.
package retry

import (
	"context"
	"time"
)

// Options configures Do. Zero fields take the value of Default.
type Options struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64

	// Retryable decides whether a failed attempt is worth another try. All
	// errors are retried when nil.
	Retryable func(error) bool

	// Sleep waits for d or until ctx is done. Replaced in tests.
	Sleep func(ctx context.Context, d time.Duration) error
}

var Default = Options{
	MaxAttempts:  3,
	InitialDelay: 1 * time.Second,
	MaxDelay:     10 * time.Second,
	Multiplier:   2,
}

func (o Options) withDefaults() Options {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = Default.MaxAttempts
	}
	if o.InitialDelay <= 0 {
		o.InitialDelay = Default.InitialDelay
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = Default.MaxDelay
	}
	if o.Multiplier < 1 {
		o.Multiplier = Default.Multiplier
	}
	if o.Sleep == nil {
		o.Sleep = Sleep
	}
	return o
}

// Do calls op until it returns nil, MaxAttempts is reached, the error is not
// retryable or ctx is done. The last error of op is returned.
func Do(ctx context.Context, opts Options, op func() error) error {
	opts = opts.withDefaults()

	delay := opts.InitialDelay
	var err error
	for attempt := 1; ; attempt++ {
		err = op()
		if err == nil {
			return nil
		}
		if attempt >= opts.MaxAttempts {
			return err
		}
		if opts.Retryable != nil && !opts.Retryable(err) {
			return err
		}

		if serr := opts.Sleep(ctx, delay); serr != nil {
			return err
		}

		delay = time.Duration(float64(delay) * opts.Multiplier)
		if delay > opts.MaxDelay {
			delay = opts.MaxDelay
		}
	}
}

// Sleep waits for d, returning early with the context error if ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
