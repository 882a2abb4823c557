package syncer

import (
	"fmt"
	"time"

	"github.com/bobinette/papersync"
	"github.com/bobinette/papersync/errors"
)

type Outcome string

const (
	OutcomeSuccess         Outcome = "success"
	OutcomePartialFailure  Outcome = "partial_failure"
	OutcomeCompleteFailure Outcome = "complete_failure"
)

// ProcessedPaper is a paper that went through the note materializer.
type ProcessedPaper struct {
	Paper papersync.Paper      `json:"paper"`
	Note  papersync.NoteResult `json:"note"`
	Err   string               `json:"error,omitempty"`
}

// Report describes a run, whatever its outcome.
type Report struct {
	StartedAt  time.Time           `json:"startedAt"`
	FinishedAt time.Time           `json:"finishedAt"`
	Outcome    Outcome             `json:"outcome"`
	Message    string              `json:"message"`
	Stats      papersync.SyncStats `json:"stats"`

	Bookmarks int              `json:"bookmarks"`
	ArxivIDs  []string         `json:"arxivIds"`
	Papers    []ProcessedPaper `json:"papers"`
	Errors    []string         `json:"errors,omitempty"`

	Archive *ArchiveBatch `json:"-"`
}

// Succeeded returns the papers whose note exists at the end of the run.
func (r Report) Succeeded() []papersync.Paper {
	var papers []papersync.Paper
	for _, p := range r.Papers {
		if p.Err == "" && !p.Note.Collision {
			papers = append(papers, p.Paper)
		}
	}
	return papers
}

// Summary is the message shown after a run without errors.
func Summary(stats papersync.SyncStats) string {
	if stats.Failed > 0 {
		return fmt.Sprintf("Sync completed with issues: Created %d, failed %d", stats.Successful, stats.Failed)
	}

	if stats.Successful == 0 {
		return "No new ArXiv papers found"
	}

	msg := fmt.Sprintf("Sync complete! Created %d new %s", stats.Successful, plural(stats.Successful, "paper"))
	if stats.Skipped > 0 {
		msg += fmt.Sprintf(", skipped %d %s", stats.Skipped, plural(stats.Skipped, "duplicate"))
	}
	return msg
}

// Describe is the message shown after a failed run.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	if serr, ok := err.(*Error); ok {
		if serr.Type == PartialFailure {
			return fmt.Sprintf("Partial sync failure: %d succeeded, %d failed", serr.Successful, serr.Failed)
		}
		err = serr.Cause
	}
	return "Sync failed: " + causeMessage(err)
}

func causeMessage(err error) string {
	switch errors.KindOf(err) {
	case errors.AuthFailed:
		return "Invalid Instapaper credentials. Please check your settings."
	case errors.NetworkError:
		return "Network error. Please check your connection."
	case errors.RateLimited:
		return fmt.Sprintf("Rate limited. Please try again in %d seconds.", int(errors.RetryAfter(err).Seconds()))
	}

	if err == nil {
		return "Unknown error"
	}
	return err.Error()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
