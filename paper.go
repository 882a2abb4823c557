package papersync

import (
	"context"
	"time"
)

// Bookmark is a saved link coming from the bookmarking service.
type Bookmark struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Time        int64  `json:"time"`
}

// Paper is the metadata of one arXiv submission. ArxivID is always the
// canonical, version-stripped, identifier.
type Paper struct {
	ArxivID         string    `json:"arxivId"`
	Title           string    `json:"title"`
	Authors         []string  `json:"authors"`
	Abstract        string    `json:"abstract"`
	Published       time.Time `json:"published"`
	PDFURL          string    `json:"pdfUrl"`
	Categories      []string  `json:"categories"`
	PrimaryCategory string    `json:"primaryCategory"`
}

// AbsURL returns the link to the abstract page of the paper.
func (p Paper) AbsURL() string {
	return AbsURL(p.ArxivID)
}

// SyncStats is the tally of one sync run.
type SyncStats struct {
	Successful int `json:"successful"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
}

// NoteResult describes what CreateNote did for a paper.
type NoteResult struct {
	Path    string `json:"path"`
	Created bool   `json:"created"`

	// Collision is set when the note found at Path belongs to another paper.
	Collision bool `json:"collision,omitempty"`
}

type BookmarkSource interface {
	Authenticate(ctx context.Context) error
	FetchBookmarks(ctx context.Context) ([]Bookmark, error)
	ArchiveBookmark(ctx context.Context, id string) error
}

type PaperSource interface {
	FetchPapers(ctx context.Context, ids []string) ([]Paper, error)
}

type NoteCreator interface {
	CreateNote(ctx context.Context, paper Paper) (NoteResult, error)
}

type ReadingList interface {
	AddPapers(ctx context.Context, papers []Paper) error
}

// Vault is the file capability of the document vault. Paths are relative to
// the vault root and use forward slashes.
type Vault interface {
	EnsureFolder(path string) error
	FileExists(path string) bool
	CreateFile(path, content string) error
	ReadFile(path string) (string, error)
	ModifyFile(path, content string) error
}
