// Package instapaper is the bookmark source backed by the Instapaper full API.
package instapaper

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/bobinette/papersync"
	"github.com/bobinette/papersync/errors"
	"github.com/bobinette/papersync/log"
)

const bookmarkType = "bookmark"

type item struct {
	BookmarkID  json.Number `json:"bookmark_id"`
	URL         string      `json:"url"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Time        float64     `json:"time"`
}

type listObject struct {
	Bookmarks []item `json:"bookmarks"`
}

type Source struct {
	client *Client
	logger log.Logger
}

func NewSource(client *Client, logger log.Logger) *Source {
	return &Source{
		client: client,
		logger: logger,
	}
}

func (s *Source) Authenticate(ctx context.Context) error {
	return s.client.VerifyCredentials(ctx)
}

func (s *Source) FetchBookmarks(ctx context.Context) ([]papersync.Bookmark, error) {
	body, err := s.client.ListBookmarks(ctx)
	if err != nil {
		return nil, err
	}

	bookmarks, err := decodeBookmarks(body)
	if err != nil {
		return nil, err
	}

	s.logger.Debugf("instapaper: fetched %d bookmarks", len(bookmarks))
	return bookmarks, nil
}

func (s *Source) ArchiveBookmark(ctx context.Context, id string) error {
	return s.client.Archive(ctx, id)
}

// decodeBookmarks validates body against the list schema and extracts the
// bookmark items, dropping users, metas and other non bookmark entries.
func decodeBookmarks(body []byte) ([]papersync.Bookmark, error) {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return nil, errors.New("failed to parse response", errors.WithKind(errors.InvalidResponse), errors.WithCause(err))
	}
	if err := compiledListSchema.Validate(inst); err != nil {
		return nil, errors.New("unrecognized bookmark list", errors.WithKind(errors.InvalidResponse), errors.WithCause(err))
	}

	var items []item
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var raws []json.RawMessage
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return nil, errors.New("failed to parse response", errors.WithKind(errors.InvalidResponse), errors.WithCause(err))
		}

		for _, raw := range raws {
			var tag struct {
				Type string `json:"type"`
			}
			if err := json.Unmarshal(raw, &tag); err != nil || tag.Type != bookmarkType {
				continue
			}

			var it item
			if err := json.Unmarshal(raw, &it); err != nil {
				return nil, errors.New("failed to parse bookmark", errors.WithKind(errors.InvalidResponse), errors.WithCause(err))
			}
			items = append(items, it)
		}
	} else {
		var obj listObject
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, errors.New("failed to parse response", errors.WithKind(errors.InvalidResponse), errors.WithCause(err))
		}
		items = obj.Bookmarks
	}

	bookmarks := make([]papersync.Bookmark, len(items))
	for i, it := range items {
		bookmarks[i] = papersync.Bookmark{
			ID:          it.BookmarkID.String(),
			URL:         it.URL,
			Title:       it.Title,
			Description: it.Description,
			Time:        int64(it.Time),
		}
	}
	return bookmarks, nil
}
