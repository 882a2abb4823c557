// Package mock provides in-memory implementations of the papersync
// interfaces, for tests.
package mock

import (
	"context"
	"sync"

	"github.com/bobinette/papersync"
)

type BookmarkSource struct {
	Bookmarks []papersync.Bookmark
	FetchErr  error
	AuthErr   error

	// ArchiveErrs makes ArchiveBookmark fail for the given ids.
	ArchiveErrs map[string]error

	mu       sync.Mutex
	archived []string
}

func (s *BookmarkSource) Authenticate(ctx context.Context) error {
	return s.AuthErr
}

func (s *BookmarkSource) FetchBookmarks(ctx context.Context) ([]papersync.Bookmark, error) {
	if s.FetchErr != nil {
		return nil, s.FetchErr
	}
	return s.Bookmarks, nil
}

func (s *BookmarkSource) ArchiveBookmark(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.archived = append(s.archived, id)
	return s.ArchiveErrs[id]
}

// Archived returns the ids ArchiveBookmark was called with.
func (s *BookmarkSource) Archived() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.archived...)
}

type PaperSource struct {
	Papers map[string]papersync.Paper
	Err    error

	Calls [][]string
}

func (s *PaperSource) FetchPapers(ctx context.Context, ids []string) ([]papersync.Paper, error) {
	s.Calls = append(s.Calls, ids)
	if s.Err != nil {
		return nil, s.Err
	}

	papers := make([]papersync.Paper, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.Papers[id]; ok {
			papers = append(papers, p)
		}
	}
	return papers, nil
}
