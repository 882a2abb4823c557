package readinglist

import (
	"github.com/russross/blackfriday"
)

// RenderHTML converts the markdown of a reading list to HTML. Tables and
// links are supported; wiki links are left as text.
func RenderHTML(content string) []byte {
	return blackfriday.MarkdownCommon([]byte(content))
}

// Content reads the reading list from the vault.
func (m *Merger) Content() (string, error) {
	return m.vault.ReadFile(m.Path())
}

// HTML reads the reading list from the vault and renders it.
func (m *Merger) HTML() ([]byte, error) {
	content, err := m.Content()
	if err != nil {
		return nil, err
	}
	return RenderHTML(content), nil
}
