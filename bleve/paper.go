package bleve

import (
	"context"
	"strings"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/analysis/lang/en"
	"github.com/blevesearch/bleve/mapping"
	"github.com/blevesearch/bleve/search/query"

	"github.com/bobinette/papersync"
	"github.com/bobinette/papersync/syncer"
)

// Hit is a paper matching a search.
type Hit struct {
	ArxivID  string  `json:"arxivId"`
	Title    string  `json:"title"`
	NotePath string  `json:"notePath"`
	Score    float64 `json:"score"`
}

// PaperIndex is a full text index over the papers that went through a sync.
// It is a syncer.Tracker.
type PaperIndex struct {
	index bleve.Index
}

// Open opens the index at path, creating it if it does not exist.
func (s *PaperIndex) Open(path string) error {
	index, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		index, err = bleve.New(path, createMapping())
	}
	if err != nil {
		return err
	}

	s.index = index
	return nil
}

// OpenMemOnly creates an index that lives in memory only.
func (s *PaperIndex) OpenMemOnly() error {
	index, err := bleve.NewMemOnly(createMapping())
	if err != nil {
		return err
	}

	s.index = index
	return nil
}

func (s *PaperIndex) Close() error {
	if s.index == nil {
		return nil
	}

	return s.index.Close()
}

func (s *PaperIndex) Index(paper papersync.Paper, notePath string) error {
	return s.index.Index(paper.ArxivID, document(paper, notePath))
}

// Track indexes the papers whose note exists after the run.
func (s *PaperIndex) Track(ctx context.Context, report syncer.Report) error {
	batch := s.index.NewBatch()
	for _, p := range report.Papers {
		if p.Err != "" || p.Note.Collision {
			continue
		}

		if err := batch.Index(p.Paper.ArxivID, document(p.Paper, p.Note.Path)); err != nil {
			return err
		}
	}

	if batch.Size() == 0 {
		return nil
	}
	return s.index.Batch(batch)
}

// Search returns the papers matching every word of q, on their title,
// abstract, authors or categories. Words are prefixes. An empty q matches
// every paper.
func (s *PaperIndex) Search(q string, limit int) ([]Hit, error) {
	searchRequest := bleve.NewSearchRequest(andQ(
		query.NewMatchAllQuery(),
		s.searchWords(q),
	))
	searchRequest.Fields = []string{"title", "notePath"}
	if limit > 0 {
		searchRequest.Size = limit
	}

	searchResults, err := s.index.Search(searchRequest)
	if err != nil {
		return nil, err
	}

	hits := make([]Hit, len(searchResults.Hits))
	for i, hit := range searchResults.Hits {
		title, _ := hit.Fields["title"].(string)
		notePath, _ := hit.Fields["notePath"].(string)
		hits[i] = Hit{
			ArxivID:  hit.ID,
			Title:    title,
			NotePath: notePath,
			Score:    hit.Score,
		}
	}
	return hits, nil
}

func document(paper papersync.Paper, notePath string) map[string]interface{} {
	return map[string]interface{}{
		"arxivID":    paper.ArxivID,
		"title":      paper.Title,
		"abstract":   paper.Abstract,
		"authors":    paper.Authors,
		"categories": paper.Categories,
		"notePath":   notePath,
	}
}

func createMapping() mapping.IndexMapping {
	english := bleve.NewTextFieldMapping()
	english.Analyzer = en.AnalyzerName

	names := bleve.NewTextFieldMapping()
	names.Analyzer = simple.Name

	exact := bleve.NewTextFieldMapping()
	exact.Analyzer = keyword.Name

	dm := bleve.NewDocumentMapping()
	dm.AddFieldMappingsAt("title", english)
	dm.AddFieldMappingsAt("abstract", english)
	dm.AddFieldMappingsAt("authors", names)
	dm.AddFieldMappingsAt("categories", names)
	dm.AddFieldMappingsAt("arxivID", exact)
	dm.AddFieldMappingsAt("notePath", exact)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = dm
	return m
}

func andQ(qs ...query.Query) query.Query {
	ands := make([]query.Query, 0, len(qs))
	for _, q := range qs {
		if q != nil {
			ands = append(ands, q)
		}
	}

	if len(ands) == 0 {
		return nil
	}
	return query.NewConjunctionQuery(ands)
}

func orQ(qs ...query.Query) query.Query {
	ors := make([]query.Query, 0, len(qs))
	for _, q := range qs {
		if q != nil {
			ors = append(ors, q)
		}
	}

	if len(ors) == 0 {
		return nil
	}
	return query.NewDisjunctionQuery(ors)
}

func (s *PaperIndex) searchWords(queryString string) query.Query {
	words := strings.Fields(queryString)

	ands := make([]query.Query, 0, len(words))
	for _, word := range words {
		ands = append(ands, orQ(
			s.prefixes(word, "title", en.AnalyzerName),
			s.prefixes(word, "abstract", en.AnalyzerName),
			s.prefixes(word, "authors", simple.Name),
			s.prefixes(word, "categories", simple.Name),
		))
	}

	return andQ(ands...)
}

// prefixes analyzes word like field is and matches every resulting token as
// a prefix.
func (s *PaperIndex) prefixes(word, field, analyzerName string) query.Query {
	analyzer := s.index.Mapping().AnalyzerNamed(analyzerName)
	tokens := analyzer.Analyze([]byte(word))
	if len(tokens) == 0 {
		return nil
	}

	conjuncs := make([]query.Query, len(tokens))
	for i, token := range tokens {
		conjuncs[i] = &query.PrefixQuery{
			Prefix:   string(token.Term),
			FieldVal: field,
		}
	}

	return query.NewConjunctionQuery(conjuncs)
}
