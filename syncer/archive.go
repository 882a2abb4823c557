package syncer

import (
	"context"

	"github.com/bobinette/papersync"
	"github.com/bobinette/papersync/log"
)

type ArchiveOutcome struct {
	BookmarkID string
	Err        error
}

// ArchiveBatch archives bookmarks in the background, one after the other.
// The run does not wait for it; callers interested in the outcome call Wait.
type ArchiveBatch struct {
	ids      []string
	done     chan struct{}
	outcomes []ArchiveOutcome
}

func startArchive(ctx context.Context, source papersync.BookmarkSource, ids []string, logger log.Logger) *ArchiveBatch {
	b := &ArchiveBatch{
		ids:  ids,
		done: make(chan struct{}),
	}

	// The batch outlives the run that started it.
	ctx = context.WithoutCancel(ctx)
	go func() {
		defer close(b.done)

		outcomes := make([]ArchiveOutcome, len(ids))
		for i, id := range ids {
			err := source.ArchiveBookmark(ctx, id)
			if err != nil {
				logger.Warnf("could not archive bookmark %s: %v", id, err)
			}
			outcomes[i] = ArchiveOutcome{BookmarkID: id, Err: err}
		}
		b.outcomes = outcomes
	}()

	return b
}

// BookmarkIDs returns the bookmarks the batch archives.
func (b *ArchiveBatch) BookmarkIDs() []string {
	if b == nil {
		return nil
	}
	return b.ids
}

// Wait blocks until every bookmark went through, or ctx is done. A nil batch
// has nothing to wait for.
func (b *ArchiveBatch) Wait(ctx context.Context) ([]ArchiveOutcome, error) {
	if b == nil {
		return nil, nil
	}

	select {
	case <-b.done:
		return b.outcomes, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
