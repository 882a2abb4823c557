// Package arxiv is the paper source backed by the arXiv export API.
package arxiv

import (
	"context"
	"fmt"

	"github.com/bobinette/papersync"
	"github.com/bobinette/papersync/errors"
	"github.com/bobinette/papersync/log"
)

type Source struct {
	client        *Client
	scrapeMissing bool
	logger        log.Logger
}

func NewSource(client *Client, scrapeMissing bool, logger log.Logger) *Source {
	return &Source{
		client:        client,
		scrapeMissing: scrapeMissing,
		logger:        logger,
	}
}

// FetchPapers returns the metadata of the papers identified by ids. The ids
// are sent in batches of at most MaxResults, one gated request per batch.
// Ids arXiv knows nothing about are absent from the result.
func (s *Source) FetchPapers(ctx context.Context, ids []string) ([]papersync.Paper, error) {
	if len(ids) == 0 {
		return []papersync.Paper{}, nil
	}

	papers := make([]papersync.Paper, 0, len(ids))
	batch := s.client.MaxResults()
	for start := 0; start < len(ids); start += batch {
		end := start + batch
		if end > len(ids) {
			end = len(ids)
		}

		data, err := s.client.Query(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}

		batchPapers, err := ParseFeed(data)
		if err != nil {
			return nil, err
		}
		papers = append(papers, batchPapers...)
	}

	if s.scrapeMissing {
		papers = append(papers, s.scrapeMissingPapers(ctx, ids, papers)...)
	}

	s.logger.Debugf("arxiv: fetched %d papers for %d ids", len(papers), len(ids))
	return papers, nil
}

// FetchPaper returns the metadata of a single paper, or a NOT_FOUND error.
func (s *Source) FetchPaper(ctx context.Context, id string) (papersync.Paper, error) {
	id = papersync.StripVersion(id)
	if !papersync.IsValidArxivID(id) {
		return papersync.Paper{}, errors.New(fmt.Sprintf("invalid arXiv id: %s", id), errors.WithKind(errors.InvalidID))
	}

	papers, err := s.FetchPapers(ctx, []string{id})
	if err != nil {
		return papersync.Paper{}, err
	}

	for _, p := range papers {
		if p.ArxivID == id {
			return p, nil
		}
	}
	return papersync.Paper{}, errors.New(fmt.Sprintf("paper %s not found", id), errors.WithKind(errors.NotFound))
}

func (s *Source) scrapeMissingPapers(ctx context.Context, ids []string, found []papersync.Paper) []papersync.Paper {
	seen := make(map[string]bool, len(found))
	for _, p := range found {
		seen[p.ArxivID] = true
	}

	var scraped []papersync.Paper
	for _, id := range ids {
		id = papersync.StripVersion(id)
		if seen[id] {
			continue
		}
		seen[id] = true

		data, err := s.client.Abstract(ctx, id)
		if err != nil {
			s.logger.Warnf("arxiv: could not fetch abstract page of %s: %v", id, err)
			continue
		}

		paper, err := ScrapeAbstractPage(id, data)
		if err != nil {
			s.logger.Warnf("arxiv: could not scrape abstract page of %s: %v", id, err)
			continue
		}
		scraped = append(scraped, paper)
	}
	return scraped
}
