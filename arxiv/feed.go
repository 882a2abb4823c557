package arxiv

import (
	"bytes"
	"encoding/xml"
	"regexp"
	"strings"
	"time"

	"github.com/bobinette/papersync"
	"github.com/bobinette/papersync/errors"
)

const (
	untitled          = "Untitled"
	noAbstract        = "No abstract available"
	unknownCategory   = "unknown"
	pdfLinkTitle      = "pdf"
	pdfLinkType       = "application/pdf"
	publishedLayout   = time.RFC3339
	entryIDNotMatched = ""
)

var entryIDRegexp = regexp.MustCompile(`(` + papersync.IDPattern + `)(v\d+)?`)

type responseEntry struct {
	ID      string `xml:"id"`
	Title   string `xml:"title"`
	Summary string `xml:"summary"`
	Authors []struct {
		Name string `xml:"name"`
	} `xml:"author"`
	Links []struct {
		HRef  string `xml:"href,attr"`
		Type  string `xml:"type,attr"`
		Title string `xml:"title,attr"`
	} `xml:"link"`
	Categories []struct {
		Term string `xml:"term,attr"`
	} `xml:"category"`
	PrimaryCategory *struct {
		Term string `xml:"term,attr"`
	} `xml:"primary_category"`
	Published string `xml:"published"`
}

type response struct {
	XMLName xml.Name        `xml:"feed"`
	Entries []responseEntry `xml:"entry"`
}

// ParseFeed reads an Atom document returned by the arXiv query API. A
// document that is not a feed is a PARSE_ERROR, an entry whose id does not
// reference a paper is skipped.
func ParseFeed(data []byte) ([]papersync.Paper, error) {
	var r response
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(&r); err != nil {
		return nil, errors.New("failed to parse arXiv feed", errors.WithKind(errors.ParseError), errors.WithCause(err))
	}

	papers := make([]papersync.Paper, 0, len(r.Entries))
	for _, entry := range r.Entries {
		paper, ok := parseEntry(entry)
		if !ok {
			continue
		}
		papers = append(papers, paper)
	}
	return papers, nil
}

func parseEntry(entry responseEntry) (papersync.Paper, bool) {
	id := extractEntryID(entry.ID)
	if id == entryIDNotMatched {
		return papersync.Paper{}, false
	}

	title := textPipe(entry.Title)
	if title == "" {
		title = untitled
	}
	abstract := textPipe(entry.Summary)
	if abstract == "" {
		abstract = noAbstract
	}

	authors := make([]string, 0, len(entry.Authors))
	for _, a := range entry.Authors {
		if name := textPipe(a.Name); name != "" {
			authors = append(authors, name)
		}
	}

	categories := make([]string, 0, len(entry.Categories))
	for _, c := range entry.Categories {
		if term := strings.TrimSpace(c.Term); term != "" {
			categories = append(categories, term)
		}
	}

	primary := unknownCategory
	if entry.PrimaryCategory != nil && strings.TrimSpace(entry.PrimaryCategory.Term) != "" {
		primary = strings.TrimSpace(entry.PrimaryCategory.Term)
	} else if len(categories) > 0 {
		primary = categories[0]
	}

	// An unparseable date is not worth dropping the paper for.
	published, _ := time.Parse(publishedLayout, strings.TrimSpace(entry.Published))

	return papersync.Paper{
		ArxivID:         id,
		Title:           title,
		Authors:         authors,
		Abstract:        abstract,
		Published:       published,
		PDFURL:          pdfLink(entry, id),
		Categories:      categories,
		PrimaryCategory: primary,
	}, true
}

func extractEntryID(raw string) string {
	match := entryIDRegexp.FindStringSubmatch(strings.TrimSpace(raw))
	if len(match) < 2 {
		return entryIDNotMatched
	}
	return match[1]
}

func pdfLink(entry responseEntry, id string) string {
	for _, link := range entry.Links {
		if link.HRef == "" {
			continue
		}
		if link.Title == pdfLinkTitle || link.Type == pdfLinkType {
			return link.HRef
		}
	}
	return papersync.PDFURL(id)
}
