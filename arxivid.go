package papersync

import (
	"fmt"
	"regexp"
)

// IDPattern matches an arXiv identifier without its version, in the new
// (2301.12345) or the legacy (hep-th/9901001) format. It is loose on the
// legacy archive name on purpose, IsValidArxivID is the strict check.
const IDPattern = `\d{4}\.\d{4,5}|[a-zA-Z.-]+/\d{7}`

var (
	newIDRegexp    = regexp.MustCompile(`^\d{4}\.\d{4,5}(v\d+)?$`)
	legacyIDRegexp = regexp.MustCompile(`^[a-z-]+/\d{7}(v\d+)?$`)
	versionRegexp  = regexp.MustCompile(`v\d+$`)
)

// IsValidArxivID checks id against the canonical grammar.
func IsValidArxivID(id string) bool {
	return newIDRegexp.MatchString(id) || legacyIDRegexp.MatchString(id)
}

// StripVersion removes a trailing version suffix (v2) from an arXiv id.
func StripVersion(id string) string {
	return versionRegexp.ReplaceAllString(id, "")
}

func AbsURL(id string) string {
	return fmt.Sprintf("https://arxiv.org/abs/%s", id)
}

func PDFURL(id string) string {
	return fmt.Sprintf("https://arxiv.org/pdf/%s.pdf", id)
}
