package arxiv

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/papersync/errors"
	"github.com/bobinette/papersync/log"
)

// feedHandler answers every query with one entry per requested id, except
// for the ids listed in missing.
func feedHandler(queries *[]string, missing ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/abs/") {
			data, _ := ioutil.ReadFile("testdata/abs.html")
			w.Write(data)
			return
		}

		idList := r.URL.Query().Get("id_list")
		*queries = append(*queries, idList)

		fmt.Fprint(w, `<feed xmlns="http://www.w3.org/2005/Atom">`)
	ids:
		for _, id := range strings.Split(idList, ",") {
			for _, m := range missing {
				if m == id {
					continue ids
				}
			}
			fmt.Fprintf(w, `<entry><id>http://arxiv.org/abs/%sv1</id><title>Paper %s</title></entry>`, id, id)
		}
		fmt.Fprint(w, `</feed>`)
	}
}

func TestSource_FetchPapers(t *testing.T) {
	var queries []string
	c, clock := newTestClient(t, feedHandler(&queries), Config{})
	s := NewSource(c, false, log.Discard())

	papers, err := s.FetchPapers(context.Background(), []string{"2301.12345", "1706.03762"})
	require.NoError(t, err)

	require.Len(t, papers, 2)
	assert.Equal(t, "2301.12345", papers[0].ArxivID)
	assert.Equal(t, "Paper 2301.12345", papers[0].Title)
	assert.Equal(t, "1706.03762", papers[1].ArxivID)
	assert.Equal(t, []string{"2301.12345,1706.03762"}, queries)
	assert.Empty(t, clock.sleeps)
}

func TestSource_FetchPapers_Empty(t *testing.T) {
	var queries []string
	c, _ := newTestClient(t, feedHandler(&queries), Config{})
	s := NewSource(c, false, log.Discard())

	papers, err := s.FetchPapers(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, papers)
	assert.Empty(t, queries, "no request for an empty id list")
}

func TestSource_FetchPapers_Batches(t *testing.T) {
	var queries []string
	c, clock := newTestClient(t, feedHandler(&queries), Config{MaxResults: 2, RateLimitSeconds: 3})
	s := NewSource(c, false, log.Discard())

	ids := []string{"2301.00001", "2301.00002", "2301.00003", "2301.00004", "2301.00005"}
	papers, err := s.FetchPapers(context.Background(), ids)
	require.NoError(t, err)

	assert.Len(t, papers, 5)
	assert.Equal(t, []string{
		"2301.00001,2301.00002",
		"2301.00003,2301.00004",
		"2301.00005",
	}, queries)
	assert.Len(t, clock.sleeps, 2, "consecutive batches are spaced by the gate")
}

func TestSource_FetchPapers_ParseError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>oops</html>")
	}), Config{})
	s := NewSource(c, false, log.Discard())

	_, err := s.FetchPapers(context.Background(), []string{"2301.12345"})
	errors.AssertKind(t, err, errors.ParseError)
}

func TestSource_FetchPapers_ScrapeMissing(t *testing.T) {
	var queries []string
	c, _ := newTestClient(t, feedHandler(&queries, "2301.12345"), Config{ScrapeMissing: true})
	s := NewSource(c, true, log.Discard())

	papers, err := s.FetchPapers(context.Background(), []string{"1706.03762", "2301.12345"})
	require.NoError(t, err)

	require.Len(t, papers, 2)
	assert.Equal(t, "1706.03762", papers[0].ArxivID)
	assert.Equal(t, "2301.12345", papers[1].ArxivID)
	assert.Equal(t, "Learning to Sync Papers", papers[1].Title)
}

func TestSource_FetchPaper(t *testing.T) {
	var queries []string
	c, _ := newTestClient(t, feedHandler(&queries, "2301.99999"), Config{})
	s := NewSource(c, false, log.Discard())
	ctx := context.Background()

	paper, err := s.FetchPaper(ctx, "1706.03762v5")
	require.NoError(t, err)
	assert.Equal(t, "1706.03762", paper.ArxivID)

	_, err = s.FetchPaper(ctx, "2301.99999")
	errors.AssertKind(t, err, errors.NotFound)

	_, err = s.FetchPaper(ctx, "not-an-id")
	errors.AssertKind(t, err, errors.InvalidID)
}
