package papersync

import (
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"
)

const (
	MaxFilenameLength = 200
	NoteExtension     = ".md"

	untitledFilename = "Untitled Paper"
)

var (
	illegalFilenameChars = regexp.MustCompile(`[\\/:*?"<>|]`)
	whitespaces          = regexp.MustCompile(`\s+`)
)

// SanitizeFilename strips the characters forbidden in file names, collapses
// whitespace and caps the length at maxLength runes.
func SanitizeFilename(name string, maxLength int) string {
	name = illegalFilenameChars.ReplaceAllString(name, "")
	name = whitespaces.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)

	runes := []rune(name)
	if len(runes) > maxLength {
		name = string(runes[:maxLength])
	}
	return name
}

// FilenameFromTitle is the note name of a paper, without extension. Both the
// note materializer and the reading list use it, so wiki links stay valid.
func FilenameFromTitle(title string) string {
	name := SanitizeFilename(title, MaxFilenameLength)
	if name == "" {
		return untitledFilename
	}
	return name
}

// NotePath is the vault path of the note of the paper titled title.
func NotePath(folder, title string) string {
	return path.Join(folder, FilenameFromTitle(title)+NoteExtension)
}

// IsSafePath refuses absolute paths and paths going up the tree.
func IsSafePath(p string) bool {
	if p == "" || strings.HasPrefix(p, "/") || strings.HasPrefix(p, `\`) {
		return false
	}
	if len(p) > 1 && p[1] == ':' {
		// Windows drive letter
		return false
	}

	for _, part := range strings.FieldsFunc(p, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return false
		}
	}
	return true
}

// IsValidURL reports whether s is an absolute URL.
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && (u.Host != "" || u.Opaque != "")
}

// FormatDate formats t as dd/mm/yyyy.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatDateTime formats t as dd/mm/yyyy HH:MM.
func FormatDateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}
