package arxiv

import (
	"regexp"
	"strings"
)

var whitespaces = regexp.MustCompile(`\s+`)

type CleanFunc func(string) string

func Clean(str string, cleanFuncs ...CleanFunc) string {
	cleaned := str
	for _, clean := range cleanFuncs {
		cleaned = clean(cleaned)
	}

	return cleaned
}

func CleaningPipe(cleanFuncs ...CleanFunc) CleanFunc {
	return func(str string) string {
		return Clean(str, cleanFuncs...)
	}
}

func RemovePrefix(prefix string) CleanFunc {
	return func(str string) string {
		if strings.HasPrefix(str, prefix) {
			return str[len(prefix):]
		}
		return str
	}
}

// CollapseSpaces replaces every run of whitespace, new lines included, by a
// single space.
func CollapseSpaces(str string) string {
	return whitespaces.ReplaceAllString(str, " ")
}

// textPipe normalizes the free text found in feeds and abstract pages.
var textPipe = CleaningPipe(
	CollapseSpaces,
	strings.TrimSpace,
)
