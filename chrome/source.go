// Package chrome is a bookmark source reading the HTML export of a browser.
package chrome

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/bobinette/papersync"
	"github.com/bobinette/papersync/errors"
	"github.com/bobinette/papersync/log"
)

type Config struct {
	File   string `toml:"file"`
	Folder string `toml:"folder"`
}

// Source reads bookmarks from an export file. When a folder is configured,
// only the bookmarks under a folder of that name are returned.
type Source struct {
	fs     afero.Fs
	file   string
	folder string
	logger log.Logger
}

func NewSource(fs afero.Fs, cfg Config, logger log.Logger) *Source {
	return &Source{
		fs:     fs,
		file:   cfg.File,
		folder: cfg.Folder,
		logger: logger,
	}
}

// Authenticate checks the export file can be read.
func (s *Source) Authenticate(ctx context.Context) error {
	info, err := s.fs.Stat(s.file)
	if err != nil {
		return errors.New(fmt.Sprintf("cannot read bookmark export %s", s.file),
			errors.WithKind(errors.FileReadFailed),
			errors.WithPath(s.file),
			errors.WithCause(err),
		)
	}
	if info.IsDir() {
		return errors.New(fmt.Sprintf("%s is a directory", s.file), errors.WithKind(errors.FileReadFailed), errors.WithPath(s.file))
	}
	return nil
}

func (s *Source) FetchBookmarks(ctx context.Context) ([]papersync.Bookmark, error) {
	f, err := s.fs.Open(s.file)
	if err != nil {
		return nil, errors.New(fmt.Sprintf("cannot open bookmark export %s", s.file),
			errors.WithKind(errors.FileReadFailed),
			errors.WithPath(s.file),
			errors.WithCause(err),
		)
	}
	defer f.Close()

	links, err := parseExport(f)
	if err != nil {
		return nil, errors.New("invalid bookmark export", errors.WithKind(errors.ParseError), errors.WithCause(err))
	}

	bookmarks := make([]papersync.Bookmark, 0, len(links))
	for i, l := range links {
		if !s.inFolder(l.Folder) || l.URL == "" {
			continue
		}

		bookmarks = append(bookmarks, papersync.Bookmark{
			ID:    strconv.Itoa(i + 1),
			URL:   l.URL,
			Title: l.Title,
			Time:  l.AddDate,
		})
	}

	s.logger.Debugf("chrome: read %d bookmarks from %s", len(bookmarks), s.file)
	return bookmarks, nil
}

// ArchiveBookmark does nothing: an export file is never written back.
func (s *Source) ArchiveBookmark(ctx context.Context, id string) error {
	s.logger.Debugf("chrome: not archiving bookmark %s, exports are read only", id)
	return nil
}

func (s *Source) inFolder(folder string) bool {
	if s.folder == "" {
		return true
	}

	for _, name := range strings.Split(folder, "/") {
		if name == s.folder {
			return true
		}
	}
	return false
}
