package arxiv

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bobinette/papersync"
	"github.com/bobinette/papersync/errors"
)

var urlRegexp = regexp.MustCompile(`arxiv\.org/(?:abs|pdf)/(` + papersync.IDPattern + `)(v\d+)?`)

// ExtractID returns the version-less arXiv identifier referenced by an
// abstract or pdf URL.
func ExtractID(rawURL string) (string, error) {
	if !papersync.IsValidURL(rawURL) {
		return "", errors.New(fmt.Sprintf("invalid URL: %s", rawURL), errors.WithKind(errors.InvalidURL))
	}

	match := urlRegexp.FindStringSubmatch(rawURL)
	if len(match) < 2 || match[1] == "" {
		return "", errors.New(fmt.Sprintf("not an arXiv URL: %s", rawURL), errors.WithKind(errors.InvalidURL))
	}

	id := match[1]
	if !papersync.IsValidArxivID(id) {
		return "", errors.New(fmt.Sprintf("invalid arXiv id: %s", id), errors.WithKind(errors.InvalidID))
	}
	return id, nil
}

// ExtractIDs extracts the identifiers of urls, in order of first appearance.
// URLs that do not reference a paper are ignored.
func ExtractIDs(urls []string) []string {
	ids := make([]string, 0, len(urls))
	seen := make(map[string]bool, len(urls))
	for _, u := range urls {
		id, err := ExtractID(u)
		if err != nil || seen[id] {
			continue
		}

		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

func IsArxivURL(rawURL string) bool {
	return strings.Contains(rawURL, "arxiv.org/abs/") || strings.Contains(rawURL, "arxiv.org/pdf/")
}
