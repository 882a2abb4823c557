package main

import (
	"net/http"
	"time"

	"github.com/spf13/afero"

	"github.com/bobinette/papersync"
	"github.com/bobinette/papersync/arxiv"
	"github.com/bobinette/papersync/bleve"
	"github.com/bobinette/papersync/bolt"
	"github.com/bobinette/papersync/chrome"
	"github.com/bobinette/papersync/errors"
	"github.com/bobinette/papersync/instapaper"
	"github.com/bobinette/papersync/log"
	"github.com/bobinette/papersync/notes"
	"github.com/bobinette/papersync/readinglist"
	"github.com/bobinette/papersync/syncer"
	"github.com/bobinette/papersync/vault"
)

const httpTimeout = 30 * time.Second

// app holds the components built from the configuration.
type app struct {
	bookmarks   papersync.BookmarkSource
	papers      *arxiv.Source
	notes       *notes.Materializer
	readingList *readinglist.Merger

	// optional
	history *bolt.HistoryStore
	index   *bleve.PaperIndex

	archive bool
	closers []func() error
}

func newApp(c Configuration, logger log.Logger) (*app, error) {
	client := &http.Client{Timeout: httpTimeout}
	v := vault.New(c.Vault.Path)

	a := &app{
		papers:      arxiv.NewSource(arxiv.NewClient(c.Arxiv, client, logger), c.Arxiv.ScrapeMissing, logger),
		notes:       notes.NewMaterializer(v, c.Vault.PapersFolder, logger),
		readingList: readinglist.NewMerger(v, c.Vault.PapersFolder, c.Vault.ReadingList, logger),
		archive:     c.Sync.Archive,
	}

	switch c.Bookmarks.Source {
	case "", "instapaper":
		a.bookmarks = instapaper.NewSource(instapaper.NewClient(c.Instapaper, client, nil, logger), logger)
	case "chrome":
		a.bookmarks = chrome.NewSource(afero.NewOsFs(), c.Bookmarks.Chrome, logger)
	default:
		return nil, errors.New("unknown bookmark source: "+c.Bookmarks.Source, errors.BadRequest())
	}

	if c.Bolt.Store != "" {
		driver := &bolt.Driver{}
		if err := driver.Open(c.Bolt.Store); err != nil {
			return nil, errors.New("error opening db", errors.WithCause(err))
		}
		a.closers = append(a.closers, driver.Close)
		a.history = bolt.NewHistoryStore(driver)
	}

	if c.Bleve.Store != "" {
		index := &bleve.PaperIndex{}
		if err := index.Open(c.Bleve.Store); err != nil {
			a.Close()
			return nil, errors.New("error opening index", errors.WithCause(err))
		}
		a.closers = append(a.closers, index.Close)
		a.index = index
	}

	return a, nil
}

func (a *app) orchestrator(logger log.Logger) *syncer.Orchestrator {
	var trackers []syncer.Tracker
	if a.history != nil {
		trackers = append(trackers, a.history)
	}
	if a.index != nil {
		trackers = append(trackers, a.index)
	}

	return syncer.New(a.bookmarks, a.papers, a.notes, a.readingList, syncer.Config{Archive: a.archive}, logger, trackers...)
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Errorf("error closing: %v", err)
		}
	}
	a.closers = nil
}
