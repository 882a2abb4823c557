// Package notes materializes papers as markdown notes in the vault.
package notes

import (
	"context"
	"time"

	"github.com/bobinette/papersync"
	"github.com/bobinette/papersync/log"
)

type Materializer struct {
	vault  papersync.Vault
	folder string
	logger log.Logger

	now func() time.Time
}

func NewMaterializer(vault papersync.Vault, folder string, logger log.Logger) *Materializer {
	return &Materializer{
		vault:  vault,
		folder: folder,
		logger: logger,
		now:    time.Now,
	}
}

// CreateNote writes the note of paper unless a note with the same name is
// already there. The note is named after the title of the paper: when the
// existing note belongs to another paper, the result is flagged as a
// collision and nothing is written.
func (m *Materializer) CreateNote(ctx context.Context, paper papersync.Paper) (papersync.NoteResult, error) {
	if err := m.vault.EnsureFolder(m.folder); err != nil {
		return papersync.NoteResult{}, err
	}

	path := papersync.NotePath(m.folder, paper.Title)
	if m.vault.FileExists(path) {
		return papersync.NoteResult{
			Path:      path,
			Created:   false,
			Collision: m.collides(path, paper),
		}, nil
	}

	if err := m.vault.CreateFile(path, Render(paper, m.now())); err != nil {
		return papersync.NoteResult{}, err
	}

	m.logger.Debugf("notes: created %s", path)
	return papersync.NoteResult{Path: path, Created: true}, nil
}

func (m *Materializer) collides(path string, paper papersync.Paper) bool {
	content, err := m.vault.ReadFile(path)
	if err != nil {
		m.logger.Warnf("notes: could not read existing note %s: %v", path, err)
		return false
	}

	id, ok := frontmatterField(content, "arxiv_id")
	if !ok || papersync.StripVersion(id) == paper.ArxivID {
		return false
	}

	m.logger.Warnf("notes: %s belongs to %s, not to %s", path, id, paper.ArxivID)
	return true
}
