package readinglist

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/papersync"
	"github.com/bobinette/papersync/errors"
	"github.com/bobinette/papersync/log"
	"github.com/bobinette/papersync/vault"
)

var (
	day1 = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	day2 = time.Date(2024, 3, 2, 18, 5, 0, 0, time.UTC)

	attention = papersync.Paper{ArxivID: "1706.03762", Title: "Attention Is All You Need"}
	yolo      = papersync.Paper{ArxivID: "1612.08242", Title: `YOLO9000: Better, Faster, "Stronger"`}
	legacy    = papersync.Paper{ArxivID: "hep-th/9901001", Title: "Strings"}
)

func newTestMerger() (*Merger, afero.Fs) {
	fs := afero.NewMemMapFs()
	m := NewMerger(vault.NewWithFs(fs), "Papers", "Reading List.md", log.Discard())
	m.now = func() time.Time { return day1 }
	return m, fs
}

func read(t *testing.T, fs afero.Fs) string {
	data, err := afero.ReadFile(fs, "Papers/Reading List.md")
	require.NoError(t, err)
	return string(data)
}

func TestMerger_Create(t *testing.T) {
	m, fs := newTestMerger()

	require.NoError(t, m.AddPapers(context.Background(), []papersync.Paper{attention, yolo, attention}))

	expected := "# Reading List\n" +
		"\n" +
		"Last updated: 01/03/2024 09:30\n" +
		"\n" +
		"| Paper | ArXiv | Read | Added |\n" +
		"| --- | --- | --- | --- |\n" +
		"| [[Attention Is All You Need]] | [1706.03762](https://arxiv.org/abs/1706.03762) | [ ] | 01/03/2024 |\n" +
		"| [[YOLO9000 Better, Faster, Stronger]] | [1612.08242](https://arxiv.org/abs/1612.08242) | [ ] | 01/03/2024 |\n"
	assert.Equal(t, expected, read(t, fs))
}

func TestMerger_Empty(t *testing.T) {
	m, fs := newTestMerger()

	require.NoError(t, m.AddPapers(context.Background(), nil))
	exists, err := afero.Exists(fs, "Papers/Reading List.md")
	require.NoError(t, err)
	assert.False(t, exists, "nothing is written for an empty batch")
}

func TestMerger_Idempotent(t *testing.T) {
	m, fs := newTestMerger()
	ctx := context.Background()

	require.NoError(t, m.AddPapers(ctx, []papersync.Paper{attention}))
	first := read(t, fs)

	m.now = func() time.Time { return day2 }
	require.NoError(t, m.AddPapers(ctx, []papersync.Paper{attention}))
	second := read(t, fs)

	assert.Equal(t, strings.Replace(first, "Last updated: 01/03/2024 09:30", "Last updated: 02/03/2024 18:05", 1), second)
	assert.Equal(t, 1, strings.Count(second, "1706.03762]("), "no duplicate row")
}

func TestMerger_InsertAfterHeader(t *testing.T) {
	m, fs := newTestMerger()
	ctx := context.Background()

	require.NoError(t, m.AddPapers(ctx, []papersync.Paper{attention}))

	m.now = func() time.Time { return day2 }
	require.NoError(t, m.AddPapers(ctx, []papersync.Paper{attention, yolo, legacy}))

	expected := "# Reading List\n" +
		"\n" +
		"Last updated: 02/03/2024 18:05\n" +
		"\n" +
		"| Paper | ArXiv | Read | Added |\n" +
		"| --- | --- | --- | --- |\n" +
		"| [[YOLO9000 Better, Faster, Stronger]] | [1612.08242](https://arxiv.org/abs/1612.08242) | [ ] | 02/03/2024 |\n" +
		"| [[Strings]] | [hep-th/9901001](https://arxiv.org/abs/hep-th/9901001) | [ ] | 02/03/2024 |\n" +
		"| [[Attention Is All You Need]] | [1706.03762](https://arxiv.org/abs/1706.03762) | [ ] | 01/03/2024 |\n"
	assert.Equal(t, expected, read(t, fs))

	// legacy ids are recognized too
	require.NoError(t, m.AddPapers(ctx, []papersync.Paper{legacy}))
	assert.Equal(t, expected, read(t, fs))
}

func TestMerger_UserEdits(t *testing.T) {
	m, fs := newTestMerger()

	existing := "# My papers\n" +
		"\n" +
		"Last updated: never\n" +
		"\n" +
		"|Paper|ArXiv|Read|Added|\n" +
		"|-----|---|---|---|\n" +
		"| [[Attention]] | [1706.03762v5](https://arxiv.org/abs/1706.03762v5) | [x] | 01/01/2020 |\n" +
		"\n" +
		"Some notes at the end.\n"
	require.NoError(t, afero.WriteFile(fs, "Papers/Reading List.md", []byte(existing), 0644))

	require.NoError(t, m.AddPapers(context.Background(), []papersync.Paper{attention, yolo}))

	expected := "# My papers\n" +
		"\n" +
		"Last updated: 01/03/2024 09:30\n" +
		"\n" +
		"|Paper|ArXiv|Read|Added|\n" +
		"|-----|---|---|---|\n" +
		"| [[YOLO9000 Better, Faster, Stronger]] | [1612.08242](https://arxiv.org/abs/1612.08242) | [ ] | 01/03/2024 |\n" +
		"| [[Attention]] | [1706.03762v5](https://arxiv.org/abs/1706.03762v5) | [x] | 01/01/2020 |\n" +
		"\n" +
		"Some notes at the end.\n"
	assert.Equal(t, expected, read(t, fs))
}

func TestMerger_NoTable(t *testing.T) {
	m, fs := newTestMerger()
	require.NoError(t, afero.WriteFile(fs, "Papers/Reading List.md", []byte("# Reading List\n\nLast updated: never"), 0644))

	require.NoError(t, m.AddPapers(context.Background(), []papersync.Paper{attention}))

	expected := "# Reading List\n" +
		"\n" +
		"Last updated: 01/03/2024 09:30\n" +
		"| [[Attention Is All You Need]] | [1706.03762](https://arxiv.org/abs/1706.03762) | [ ] | 01/03/2024 |\n"
	assert.Equal(t, expected, read(t, fs))
}

func TestMerger_Errors(t *testing.T) {
	m := NewMerger(vault.NewWithFs(afero.NewMemMapFs()), "/abs", "Reading List.md", log.Discard())
	errors.AssertKind(t, m.AddPapers(context.Background(), []papersync.Paper{attention}), errors.InvalidPath)

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("Papers", 0755))
	m = NewMerger(vault.NewWithFs(afero.NewReadOnlyFs(fs)), "Papers", "Reading List.md", log.Discard())
	errors.AssertKind(t, m.AddPapers(context.Background(), []papersync.Paper{attention}), errors.FileWriteFailed)
}

func TestExistingIDs(t *testing.T) {
	content := "| [[A]] | [2301.12345v2](https://arxiv.org/abs/2301.12345v2) |\n" +
		"| [[B]] | [hep-th/9901001](https://arxiv.org/abs/hep-th/9901001) |\n" +
		"see [1706.03762](https://example.com/1706.03762)\n"

	assert.Equal(t, map[string]bool{"2301.12345": true, "hep-th/9901001": true}, ExistingIDs(content))
}

func TestRenderHTML(t *testing.T) {
	m, fs := newTestMerger()
	require.NoError(t, m.AddPapers(context.Background(), []papersync.Paper{attention}))

	html, err := m.HTML()
	require.NoError(t, err)
	assert.Contains(t, string(html), "Reading List</h1>")
	assert.Contains(t, string(html), "<table>")
	assert.Contains(t, string(html), `<a href="https://arxiv.org/abs/1706.03762">1706.03762</a>`)
	assert.NotEmpty(t, read(t, fs))

	_, err = NewMerger(vault.NewWithFs(afero.NewMemMapFs()), "Papers", "Reading List.md", log.Discard()).HTML()
	errors.AssertKind(t, err, errors.FileReadFailed)
}
