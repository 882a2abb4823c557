package syncer

import (
	"sync"

	"github.com/bobinette/papersync"
)

// state counts the outcomes of the current run.
type state struct {
	mu    sync.Mutex
	stats papersync.SyncStats
}

func (s *state) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = papersync.SyncStats{}
}

func (s *state) incrementSuccessful() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Successful++
}

func (s *state) incrementSkipped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Skipped++
}

func (s *state) incrementFailed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Failed++
}

func (s *state) snapshot() papersync.SyncStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}
