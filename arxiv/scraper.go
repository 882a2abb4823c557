package arxiv

import (
	"bytes"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/bobinette/papersync"
	"github.com/bobinette/papersync/errors"
)

var (
	subjectRegexp = regexp.MustCompile(`\(([a-zA-Z-]+(?:\.[a-zA-Z-]+)?)\)`)

	titlePipe    = CleaningPipe(textPipe, RemovePrefix("Title:"), strings.TrimSpace)
	abstractPipe = CleaningPipe(textPipe, RemovePrefix("Abstract:"), strings.TrimSpace)
)

// citationDateLayout is the layout of the citation_date meta tag.
const citationDateLayout = "2006/01/02"

// ScrapeAbstractPage extracts the metadata of paper id from its abstract
// page. It is used for papers the API does not return.
func ScrapeAbstractPage(id string, data []byte) (papersync.Paper, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return papersync.Paper{}, errors.New("could not parse abstract page", errors.WithKind(errors.ParseError), errors.WithCause(err))
	}

	title := titlePipe(doc.Find("h1.title").First().Text())
	if title == "" {
		title = textPipe(doc.Find(`meta[name="citation_title"]`).AttrOr("content", ""))
	}
	if title == "" {
		return papersync.Paper{}, errors.New("no title found on abstract page", errors.WithKind(errors.ParseError))
	}

	var authors []string
	doc.Find("div.authors a").Each(func(_ int, s *goquery.Selection) {
		if name := textPipe(s.Text()); name != "" {
			authors = append(authors, name)
		}
	})

	abstract := abstractPipe(doc.Find("blockquote.abstract").First().Text())
	if abstract == "" {
		abstract = noAbstract
	}

	var categories []string
	for _, match := range subjectRegexp.FindAllStringSubmatch(doc.Find("td.subjects").First().Text(), -1) {
		categories = append(categories, match[1])
	}

	primary := unknownCategory
	if m := subjectRegexp.FindStringSubmatch(doc.Find("span.primary-subject").First().Text()); len(m) > 1 {
		primary = m[1]
	} else if len(categories) > 0 {
		primary = categories[0]
	}

	published, _ := time.Parse(citationDateLayout, strings.TrimSpace(doc.Find(`meta[name="citation_date"]`).AttrOr("content", "")))

	return papersync.Paper{
		ArxivID:         id,
		Title:           title,
		Authors:         authors,
		Abstract:        abstract,
		Published:       published,
		PDFURL:          papersync.PDFURL(id),
		Categories:      categories,
		PrimaryCategory: primary,
	}, nil
}
