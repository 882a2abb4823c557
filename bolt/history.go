package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/boltdb/bolt"

	"github.com/bobinette/papersync"
	"github.com/bobinette/papersync/syncer"
)

var (
	runBucket   = []byte("runs")
	paperBucket = []byte("papers")
)

// Run is the stored summary of a sync run.
type Run struct {
	ID         int                 `json:"id"`
	StartedAt  time.Time           `json:"startedAt"`
	FinishedAt time.Time           `json:"finishedAt"`
	Outcome    syncer.Outcome      `json:"outcome"`
	Message    string              `json:"message"`
	Stats      papersync.SyncStats `json:"stats"`
	Bookmarks  int                 `json:"bookmarks"`
	ArxivIDs   []string            `json:"arxivIds"`
	Errors     []string            `json:"errors,omitempty"`
}

// ImportedPaper records the first run that saw a paper through.
type ImportedPaper struct {
	ArxivID    string    `json:"arxivId"`
	Title      string    `json:"title"`
	NotePath   string    `json:"notePath"`
	Categories []string  `json:"categories"`
	ImportedAt time.Time `json:"importedAt"`
	RunID      int       `json:"runId"`
}

// HistoryStore keeps the runs and the imported papers in a bolt database.
// It is a syncer.Tracker.
type HistoryStore struct {
	driver *Driver
}

func NewHistoryStore(driver *Driver) *HistoryStore {
	return &HistoryStore{
		driver: driver,
	}
}

// Track saves the run and registers the papers it saw through that are not
// registered yet.
func (s *HistoryStore) Track(ctx context.Context, report syncer.Report) error {
	return s.driver.store.Update(func(tx *bolt.Tx) error {
		runs := tx.Bucket(runBucket)

		id, err := runs.NextSequence()
		if err != nil {
			return fmt.Errorf("error incrementing id: %v", err)
		}

		run := Run{
			ID:         int(id),
			StartedAt:  report.StartedAt,
			FinishedAt: report.FinishedAt,
			Outcome:    report.Outcome,
			Message:    report.Message,
			Stats:      report.Stats,
			Bookmarks:  report.Bookmarks,
			ArxivIDs:   report.ArxivIDs,
			Errors:     report.Errors,
		}
		data, err := json.Marshal(run)
		if err != nil {
			return err
		}
		if err := runs.Put(itob(run.ID), data); err != nil {
			return err
		}

		papers := tx.Bucket(paperBucket)
		for _, p := range report.Papers {
			if p.Err != "" || p.Note.Collision {
				continue
			}

			key := []byte(p.Paper.ArxivID)
			if papers.Get(key) != nil {
				continue
			}

			data, err := json.Marshal(ImportedPaper{
				ArxivID:    p.Paper.ArxivID,
				Title:      p.Paper.Title,
				NotePath:   p.Note.Path,
				Categories: p.Paper.Categories,
				ImportedAt: report.FinishedAt,
				RunID:      run.ID,
			})
			if err != nil {
				return err
			}
			if err := papers.Put(key, data); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListRuns returns the last runs, newest first. A limit <= 0 returns all of
// them.
func (s *HistoryStore) ListRuns(limit int) ([]Run, error) {
	runs := make([]Run, 0)
	err := s.driver.store.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(runBucket).Cursor()
		for k, data := c.Last(); k != nil; k, data = c.Prev() {
			if limit > 0 && len(runs) >= limit {
				break
			}

			var run Run
			if err := json.Unmarshal(data, &run); err != nil {
				return err
			}
			runs = append(runs, run)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return runs, nil
}

// GetPaper returns the paper registered under id. The boolean is false if
// there is none.
func (s *HistoryStore) GetPaper(id string) (ImportedPaper, bool, error) {
	var paper ImportedPaper
	found := false
	err := s.driver.store.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(paperBucket).Get([]byte(id))
		if data == nil {
			return nil
		}

		found = true
		return json.Unmarshal(data, &paper)
	})
	if err != nil {
		return ImportedPaper{}, false, err
	}

	return paper, found, nil
}

// ListPapers returns every registered paper, ordered by arxiv id.
func (s *HistoryStore) ListPapers() ([]ImportedPaper, error) {
	papers := make([]ImportedPaper, 0)
	err := s.driver.store.View(func(tx *bolt.Tx) error {
		return tx.Bucket(paperBucket).ForEach(func(k, data []byte) error {
			var paper ImportedPaper
			if err := json.Unmarshal(data, &paper); err != nil {
				return err
			}
			papers = append(papers, paper)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return papers, nil
}

// itob returns an 8-byte big endian representation of v.
func itob(v int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}
