package notes

import (
	"fmt"
	"strings"
	"time"

	"github.com/bobinette/papersync"
)

var baseTags = []string{"paper", "arxiv"}

// NormalizeTags turns arXiv categories into note tags: "cs.CV; cs.LG"
// gives cs-cv and cs-lg.
func NormalizeTags(categories []string) []string {
	tags := make([]string, 0, len(categories))
	for _, category := range categories {
		for _, part := range strings.Split(category, ";") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			tags = append(tags, strings.Replace(strings.ToLower(part), ".", "-", -1))
		}
	}
	return tags
}

var quotedEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// escapeYAML quotes values that would otherwise be misread by a YAML parser.
// Inside double quotes, backslashes are escapes and must be doubled.
func escapeYAML(value string) string {
	if strings.ContainsAny(value, ":#[") {
		return `"` + quotedEscaper.Replace(value) + `"`
	}
	return value
}

// Render returns the markdown content of the note of paper, added on date.
func Render(paper papersync.Paper, date time.Time) string {
	var b strings.Builder

	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %s\n", escapeYAML(paper.Title))
	fmt.Fprintf(&b, "authors: %s\n", escapeYAML(strings.Join(paper.Authors, ", ")))
	fmt.Fprintf(&b, "arxiv_id: %s\n", escapeYAML(paper.ArxivID))
	fmt.Fprintf(&b, "pdf_link: %s\n", escapeYAML(paper.PDFURL))
	fmt.Fprintf(&b, "date_added: %s\n", escapeYAML(papersync.FormatDate(date)))
	b.WriteString("tags:\n")
	for _, tag := range append(append([]string{}, baseTags...), NormalizeTags(paper.Categories)...) {
		fmt.Fprintf(&b, "  - %s\n", tag)
	}
	b.WriteString("---\n")

	fmt.Fprintf(&b, "\n# %s\n\n", paper.Title)
	fmt.Fprintf(&b, "[ArXiv](%s) | [PDF](%s)\n\n", paper.AbsURL(), paper.PDFURL)
	fmt.Fprintf(&b, "## Abstract\n\n%s\n\n", paper.Abstract)
	b.WriteString("## Notes\n\n")

	return b.String()
}
