package syncer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/papersync/errors"
)

type blockingSyncer struct {
	started chan struct{}
	release chan struct{}
}

func (s *blockingSyncer) Sync(ctx context.Context) (Report, error) {
	close(s.started)
	<-s.release
	return Report{Outcome: OutcomeSuccess}, nil
}

func TestRunner(t *testing.T) {
	s := &blockingSyncer{started: make(chan struct{}), release: make(chan struct{})}
	r := NewRunner(s)

	done := make(chan error)
	go func() {
		_, err := r.Run(context.Background())
		done <- err
	}()
	<-s.started

	_, err := r.Run(context.Background())
	assert.Equal(t, ErrBusy, err)
	errors.AssertCode(t, err, 409)

	close(s.release)
	require.NoError(t, <-done)

	// Free again once the first run is over.
	s.started = make(chan struct{})
	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeSuccess, report.Outcome)
}
