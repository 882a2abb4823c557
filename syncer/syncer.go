// Package syncer runs the pipeline turning arXiv bookmarks into notes.
package syncer

import (
	"context"
	"time"

	"github.com/bobinette/papersync"
	"github.com/bobinette/papersync/arxiv"
	"github.com/bobinette/papersync/log"
)

type Config struct {
	// Archive the bookmarks of the papers that went through.
	Archive bool `toml:"archive"`
}

// Tracker is told about every run once it is over.
type Tracker interface {
	Track(ctx context.Context, report Report) error
}

type Orchestrator struct {
	bookmarks   papersync.BookmarkSource
	papers      papersync.PaperSource
	notes       papersync.NoteCreator
	readingList papersync.ReadingList

	archive  bool
	trackers []Tracker
	logger   log.Logger

	state *state
	now   func() time.Time
}

func New(
	bookmarks papersync.BookmarkSource,
	papers papersync.PaperSource,
	notes papersync.NoteCreator,
	readingList papersync.ReadingList,
	cfg Config,
	logger log.Logger,
	trackers ...Tracker,
) *Orchestrator {
	return &Orchestrator{
		bookmarks:   bookmarks,
		papers:      papers,
		notes:       notes,
		readingList: readingList,

		archive:  cfg.Archive,
		trackers: trackers,
		logger:   logger,

		state: &state{},
		now:   time.Now,
	}
}

// Stats returns the counters of the current, or last, run.
func (o *Orchestrator) Stats() papersync.SyncStats {
	return o.state.snapshot()
}

// Sync runs one pass. The error is nil or a *Error: a complete failure when
// no paper could even be fetched, a partial failure when some steps failed.
// The report is filled in both cases.
func (o *Orchestrator) Sync(ctx context.Context) (Report, error) {
	report, err := o.sync(ctx)

	report.FinishedAt = o.now()
	switch {
	case err == nil:
		report.Outcome = OutcomeSuccess
		report.Message = Summary(report.Stats)
	case err.Type == PartialFailure:
		report.Outcome = OutcomePartialFailure
		report.Message = Describe(err)
	default:
		report.Outcome = OutcomeCompleteFailure
		report.Message = Describe(err)
		report.Errors = []string{err.Cause.Error()}
	}
	o.logger.Printf("sync %s: %s", report.Outcome, report.Message)

	o.track(ctx, report)

	if err != nil {
		return report, err
	}
	return report, nil
}

func (o *Orchestrator) sync(ctx context.Context) (Report, *Error) {
	o.state.reset()
	report := Report{StartedAt: o.now()}

	bookmarks, err := o.bookmarks.FetchBookmarks(ctx)
	if err != nil {
		return report, completeFailure(err)
	}
	report.Bookmarks = len(bookmarks)

	ids := arxivIDs(bookmarks)
	report.ArxivIDs = ids
	if len(ids) == 0 {
		o.logger.Debugf("no arXiv bookmark among %d", len(bookmarks))
		return report, nil
	}

	papers, err := o.papers.FetchPapers(ctx, ids)
	if err != nil {
		return report, completeFailure(err)
	}

	var errs []error
	var succeeded []papersync.Paper
	seen := make(map[string]bool, len(papers))
	for _, paper := range papers {
		if seen[paper.ArxivID] {
			continue
		}
		seen[paper.ArxivID] = true

		processed, err := o.createNote(ctx, paper)
		report.Papers = append(report.Papers, processed)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !processed.Note.Collision {
			succeeded = append(succeeded, paper)
		}
	}

	if len(succeeded) > 0 {
		if err := o.readingList.AddPapers(ctx, succeeded); err != nil {
			o.logger.Errorf("could not update the reading list: %v", err)
			errs = append(errs, err)
		}
	}

	if o.archive && len(succeeded) > 0 {
		report.Archive = startArchive(ctx, o.bookmarks, archivable(bookmarks, succeeded), o.logger)
	}

	report.Stats = o.state.snapshot()
	if len(errs) > 0 {
		for _, err := range errs {
			report.Errors = append(report.Errors, err.Error())
		}
		return report, &Error{
			Type:       PartialFailure,
			Successful: report.Stats.Successful,
			Failed:     report.Stats.Failed,
			Errors:     errs,
		}
	}
	return report, nil
}

func (o *Orchestrator) createNote(ctx context.Context, paper papersync.Paper) (ProcessedPaper, error) {
	res, err := o.notes.CreateNote(ctx, paper)
	if err != nil {
		o.state.incrementFailed()
		o.logger.Errorf("could not create note for %s: %v", paper.ArxivID, err)
		return ProcessedPaper{Paper: paper, Err: err.Error()}, err
	}

	if res.Created {
		o.state.incrementSuccessful()
	} else {
		o.state.incrementSkipped()
		if res.Collision {
			o.logger.Warnf("%s: note %s belongs to another paper", paper.ArxivID, res.Path)
		}
	}
	return ProcessedPaper{Paper: paper, Note: res}, nil
}

func (o *Orchestrator) track(ctx context.Context, report Report) {
	for _, t := range o.trackers {
		if err := t.Track(ctx, report); err != nil {
			o.logger.Errorf("could not track sync: %v", err)
		}
	}
}

// arxivIDs extracts the paper ids referenced by bookmarks, without duplicates.
func arxivIDs(bookmarks []papersync.Bookmark) []string {
	urls := make([]string, 0, len(bookmarks))
	for _, b := range bookmarks {
		if arxiv.IsArxivURL(b.URL) {
			urls = append(urls, b.URL)
		}
	}
	return arxiv.ExtractIDs(urls)
}

// archivable returns the ids of the bookmarks pointing to one of papers.
func archivable(bookmarks []papersync.Bookmark, papers []papersync.Paper) []string {
	done := make(map[string]bool, len(papers))
	for _, p := range papers {
		done[p.ArxivID] = true
	}

	var ids []string
	for _, b := range bookmarks {
		if !arxiv.IsArxivURL(b.URL) {
			continue
		}

		id, err := arxiv.ExtractID(b.URL)
		if err == nil && done[id] {
			ids = append(ids, b.ID)
		}
	}
	return ids
}
