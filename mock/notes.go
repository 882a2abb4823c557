package mock

import (
	"context"
	"sort"

	"github.com/bobinette/papersync"
)

// NoteCreator records notes in memory. A paper whose note already exists is
// reported as not created.
type NoteCreator struct {
	Errs map[string]error

	// Existing maps the title of existing notes to the arxiv id they
	// belong to.
	Existing map[string]string
}

func (n *NoteCreator) CreateNote(ctx context.Context, paper papersync.Paper) (papersync.NoteResult, error) {
	if err := n.Errs[paper.ArxivID]; err != nil {
		return papersync.NoteResult{}, err
	}
	if n.Existing == nil {
		n.Existing = make(map[string]string)
	}

	path := papersync.NotePath("Papers", paper.Title)
	if id, ok := n.Existing[paper.Title]; ok {
		return papersync.NoteResult{Path: path, Collision: id != paper.ArxivID}, nil
	}

	n.Existing[paper.Title] = paper.ArxivID
	return papersync.NoteResult{Path: path, Created: true}, nil
}

type ReadingList struct {
	Err error

	IDs   map[string]bool
	Calls int
}

func (r *ReadingList) AddPapers(ctx context.Context, papers []papersync.Paper) error {
	r.Calls++
	if r.Err != nil {
		return r.Err
	}
	if r.IDs == nil {
		r.IDs = make(map[string]bool)
	}
	for _, p := range papers {
		r.IDs[p.ArxivID] = true
	}
	return nil
}

// Sorted returns the ids in the list, sorted.
func (r *ReadingList) Sorted() []string {
	ids := make([]string, 0, len(r.IDs))
	for id := range r.IDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
