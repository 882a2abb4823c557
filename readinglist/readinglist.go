// Package readinglist maintains the markdown table indexing every synced
// paper.
package readinglist

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/bobinette/papersync"
	"github.com/bobinette/papersync/log"
)

const (
	title       = "# Reading List"
	tableHeader = "| Paper | ArXiv | Read | Added |\n| --- | --- | --- | --- |\n"
)

var (
	lastUpdatedRegexp = regexp.MustCompile(`Last updated: .*`)
	tableHeaderRegexp = regexp.MustCompile(`\|\s*Paper\s*\|.*\|\s*\n\|\s*-+\s*\|.*\|\s*\n`)
	arxivLinkRegexp   = regexp.MustCompile(`\[((?:` + papersync.IDPattern + `)(?:v\d+)?)\]\(https://arxiv\.org/abs/(?:` + papersync.IDPattern + `)(?:v\d+)?\)`)
)

type Merger struct {
	vault    papersync.Vault
	folder   string
	filename string
	logger   log.Logger

	now func() time.Time
}

func NewMerger(vault papersync.Vault, folder, filename string, logger log.Logger) *Merger {
	return &Merger{
		vault:    vault,
		folder:   folder,
		filename: filename,
		logger:   logger,
		now:      time.Now,
	}
}

// Path is the vault path of the reading list.
func (m *Merger) Path() string {
	return path.Join(m.folder, m.filename)
}

// AddPapers adds a row for each paper not listed yet, and refreshes the last
// updated line. The file is created on first use.
func (m *Merger) AddPapers(ctx context.Context, papers []papersync.Paper) error {
	if len(papers) == 0 {
		return nil
	}

	if err := m.vault.EnsureFolder(m.folder); err != nil {
		return err
	}

	p := m.Path()
	now := m.now()

	if !m.vault.FileExists(p) {
		m.logger.Debugf("readinglist: creating %s with %d papers", p, len(papers))
		return m.vault.CreateFile(p, newDocument(unique(papers, nil), now))
	}

	existing, err := m.vault.ReadFile(p)
	if err != nil {
		return err
	}

	fresh := unique(papers, ExistingIDs(existing))
	m.logger.Debugf("readinglist: adding %d of %d papers to %s", len(fresh), len(papers), p)
	return m.vault.ModifyFile(p, merge(existing, fresh, now))
}

// ExistingIDs returns the version-less ids linked from content.
func ExistingIDs(content string) map[string]bool {
	ids := make(map[string]bool)
	for _, match := range arxivLinkRegexp.FindAllStringSubmatch(content, -1) {
		ids[papersync.StripVersion(match[1])] = true
	}
	return ids
}

// unique filters out the papers in seen, and the repetitions of a paper.
func unique(papers []papersync.Paper, seen map[string]bool) []papersync.Paper {
	if seen == nil {
		seen = make(map[string]bool)
	}

	res := make([]papersync.Paper, 0, len(papers))
	for _, p := range papers {
		id := papersync.StripVersion(p.ArxivID)
		if seen[id] {
			continue
		}
		seen[id] = true
		res = append(res, p)
	}
	return res
}

func newDocument(papers []papersync.Paper, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\nLast updated: %s\n\n", title, papersync.FormatDateTime(now))
	b.WriteString(tableHeader)
	b.WriteString(rows(papers, now))
	return b.String()
}

func merge(existing string, papers []papersync.Paper, now time.Time) string {
	content := existing
	if loc := lastUpdatedRegexp.FindStringIndex(content); loc != nil {
		content = content[:loc[0]] + "Last updated: " + papersync.FormatDateTime(now) + content[loc[1]:]
	}

	if len(papers) == 0 {
		return content
	}

	newRows := rows(papers, now)
	if loc := tableHeaderRegexp.FindStringIndex(content); loc != nil {
		return content[:loc[1]] + newRows + content[loc[1]:]
	}

	// No table found, the rows go at the end.
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + newRows
}

// rows renders one line per paper, each ending with a new line.
func rows(papers []papersync.Paper, now time.Time) string {
	var b strings.Builder
	for _, p := range papers {
		fmt.Fprintf(&b, "| [[%s]] | [%s](%s) | [ ] | %s |\n",
			papersync.FilenameFromTitle(p.Title),
			p.ArxivID,
			p.AbsURL(),
			papersync.FormatDate(now),
		)
	}
	return b.String()
}
