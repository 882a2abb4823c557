package bleve

import (
	"context"
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/papersync"
	"github.com/bobinette/papersync/syncer"
)

func createIndex(t *testing.T) (*PaperIndex, func()) {
	index := &PaperIndex{}
	require.NoError(t, index.OpenMemOnly(), "creating index")

	return index, func() {
		if err := index.Close(); err != nil {
			t.Log(err)
		}
	}
}

func ids(hits []Hit) []string {
	res := make([]string, len(hits))
	for i, hit := range hits {
		res[i] = hit.ArxivID
	}
	return res
}

var papers = []papersync.Paper{
	{
		ArxivID:    "1706.03762",
		Title:      "Attention Is All You Need",
		Authors:    []string{"Ashish Vaswani", "Noam Shazeer"},
		Abstract:   "The dominant sequence transduction models are based on complex recurrent networks.",
		Categories: []string{"cs.CL", "cs.LG"},
	},
	{
		ArxivID:    "1612.08242",
		Title:      "YOLO9000: Better, Faster, Stronger",
		Authors:    []string{"Joseph Redmon", "Ali Farhadi"},
		Abstract:   "We introduce YOLO9000, a real-time object detection system.",
		Categories: []string{"cs.CV"},
	},
	{
		ArxivID:    "hep-th/9901001",
		Title:      "Learning strings",
		Authors:    []string{"Jane Doe"},
		Abstract:   "Strings, learned.",
		Categories: []string{"hep-th"},
	},
}

func TestPaperIndex_Search(t *testing.T) {
	index, tearDown := createIndex(t)
	defer tearDown()

	for _, p := range papers {
		require.NoError(t, index.Index(p, "Papers/"+p.Title+".md"), "indexing %s", p.ArxivID)
	}

	tts := map[string]struct {
		q        string
		expected []string
	}{
		"title":           {"attention", []string{"1706.03762"}},
		"title prefix":    {"atten", []string{"1706.03762"}},
		"stemmed":         {"learning", []string{"hep-th/9901001"}},
		"abstract":        {"detection", []string{"1612.08242"}},
		"author":          {"redmon", []string{"1612.08242"}},
		"category":        {"cv", []string{"1612.08242"}},
		"every word":      {"object redmon", []string{"1612.08242"}},
		"no match":        {"pizza", []string{}},
		"words disagree":  {"attention redmon", []string{}},
		"empty":           {"", []string{"1706.03762", "1612.08242", "hep-th/9901001"}},
		"shared category": {"cs", []string{"1706.03762", "1612.08242"}},
	}

	for name, tt := range tts {
		t.Run(name, func(t *testing.T) {
			hits, err := index.Search(tt.q, 0)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.expected, ids(hits))
		})
	}

	hits, err := index.Search("yolo", 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "YOLO9000: Better, Faster, Stronger", hits[0].Title)
	assert.Equal(t, "Papers/YOLO9000: Better, Faster, Stronger.md", hits[0].NotePath)

	hits, err = index.Search("", 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestPaperIndex_Track(t *testing.T) {
	index, tearDown := createIndex(t)
	defer tearDown()

	report := syncer.Report{
		Papers: []syncer.ProcessedPaper{
			{Paper: papers[0], Note: papersync.NoteResult{Path: "Papers/Attention Is All You Need.md", Created: true}},
			{Paper: papers[1], Err: "disk full"},
			{Paper: papers[2], Note: papersync.NoteResult{Path: "Papers/Learning strings.md", Collision: true}},
		},
	}
	require.NoError(t, index.Track(context.Background(), report))

	hits, err := index.Search("", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"1706.03762"}, ids(hits))

	require.NoError(t, index.Track(context.Background(), syncer.Report{}), "empty report")
}

func TestPaperIndex_Open(t *testing.T) {
	dir, err := ioutil.TempDir("", "")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := dir + "/papers.bleve"

	index := &PaperIndex{}
	require.NoError(t, index.Open(path), "create")
	require.NoError(t, index.Index(papers[0], "a.md"))
	require.NoError(t, index.Close())

	index = &PaperIndex{}
	require.NoError(t, index.Open(path), "reopen")
	defer index.Close()

	hits, err := index.Search("attention", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"1706.03762"}, ids(hits))
}
