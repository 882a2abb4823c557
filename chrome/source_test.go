package chrome

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/papersync"
	"github.com/bobinette/papersync/errors"
	"github.com/bobinette/papersync/log"
)

var _ papersync.BookmarkSource = (*Source)(nil)

func TestParseExport(t *testing.T) {
	f, err := os.Open("testdata/bookmarks.html")
	require.NoError(t, err)
	defer f.Close()

	links, err := parseExport(f)
	require.NoError(t, err)

	assert.Equal(t, []link{
		{Folder: "Bookmarks bar", Title: "The Go Programming Language", URL: "https://golang.org/", AddDate: 1500000001},
		{Folder: "Bookmarks bar/Papers", Title: "Attention Is All You Need", URL: "https://arxiv.org/abs/1706.03762", AddDate: 1500000003},
		{Folder: "Bookmarks bar/Papers/Vision", Title: "YOLO9000", URL: "https://arxiv.org/pdf/1612.08242v1.pdf", AddDate: 1500000005},
		{Folder: "Bookmarks bar", Title: "Hacker News", URL: "https://news.ycombinator.com/", AddDate: 1500000006},
		{Folder: "", Title: "Loose paper", URL: "https://arxiv.org/abs/2301.12345"},
	}, links)
}

func TestParseExport_Edges(t *testing.T) {
	tts := map[string]struct {
		input    string
		expected []link
	}{
		"empty": {
			input: "",
		},
		"no list": {
			input: "<html><body><p>nothing</p></body></html>",
		},
		"unclosed": {
			input:    `<DL><p><DT><A HREF="https://arxiv.org/abs/2301.12345">Paper</A>`,
			expected: []link{{Title: "Paper", URL: "https://arxiv.org/abs/2301.12345"}},
		},
		"truncated last anchor": {
			input: `<DL><p><DT><A HREF="https://arxiv.org/abs/2301.12345">First</A><DT><A HREF="https://arxiv.org/abs/2301.00001">`,
			expected: []link{
				{Title: "First", URL: "https://arxiv.org/abs/2301.12345"},
				{URL: "https://arxiv.org/abs/2301.00001"},
			},
		},
		"truncated folder name": {
			input:    `<DL><DT><A HREF="https://arxiv.org/abs/2301.12345">First</A><DT><H3>`,
			expected: []link{{Title: "First", URL: "https://arxiv.org/abs/2301.12345"}},
		},
		"empty anchor": {
			input:    `<DL><DT><A HREF="https://example.com"></A></DL>`,
			expected: []link{{URL: "https://example.com"}},
		},
	}

	for name, tt := range tts {
		links, err := parseExport(strings.NewReader(tt.input))
		require.NoError(t, err, name)
		assert.Equal(t, tt.expected, links, name)
	}
}

func newTestSource(t *testing.T, folder string) *Source {
	data, err := os.ReadFile("testdata/bookmarks.html")
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "bookmarks.html", data, 0644))
	return NewSource(fs, Config{File: "bookmarks.html", Folder: folder}, log.Discard())
}

func TestSource_FetchBookmarks(t *testing.T) {
	ctx := context.Background()

	s := newTestSource(t, "")
	require.NoError(t, s.Authenticate(ctx))

	bookmarks, err := s.FetchBookmarks(ctx)
	require.NoError(t, err)
	assert.Len(t, bookmarks, 5)

	s = newTestSource(t, "Papers")
	bookmarks, err = s.FetchBookmarks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []papersync.Bookmark{
		{ID: "2", URL: "https://arxiv.org/abs/1706.03762", Title: "Attention Is All You Need", Time: 1500000003},
		{ID: "3", URL: "https://arxiv.org/pdf/1612.08242v1.pdf", Title: "YOLO9000", Time: 1500000005},
	}, bookmarks)

	assert.NoError(t, s.ArchiveBookmark(ctx, "2"))
}

func TestSource_MissingFile(t *testing.T) {
	s := NewSource(afero.NewMemMapFs(), Config{File: "missing.html"}, log.Discard())
	ctx := context.Background()

	errors.AssertKind(t, s.Authenticate(ctx), errors.FileReadFailed)

	_, err := s.FetchBookmarks(ctx)
	errors.AssertKind(t, err, errors.FileReadFailed)
}
