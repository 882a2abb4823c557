package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-kit/kit/endpoint"
	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/bobinette/papersync/bleve"
	"github.com/bobinette/papersync/bolt"
	"github.com/bobinette/papersync/errors"
	"github.com/bobinette/papersync/syncer"
)

const (
	defaultHistoryLimit = 20
	defaultSearchLimit  = 10
)

var errInvalidRequest = errors.New("invalid request", errors.BadRequest())

// HTTPServer defines the interface to register the http handlers.
type HTTPServer interface {
	RegisterHandler(path, method string, f http.Handler)
}

type Runner interface {
	Run(ctx context.Context) (syncer.Report, error)
}

type History interface {
	ListRuns(limit int) ([]bolt.Run, error)
}

type Searcher interface {
	Search(q string, limit int) ([]bleve.Hit, error)
}

type ReadingList interface {
	HTML() ([]byte, error)
}

// Services are the dependencies of the handlers. History, Searcher and
// ReadingList are optional, their routes are not registered when nil.
type Services struct {
	Runner      Runner
	History     History
	Searcher    Searcher
	ReadingList ReadingList
}

// encodeError writes an error as an HTTP response. It handles the status code
// contained in the error.
func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	statusCode := http.StatusInternalServerError
	if err, ok := err.(errors.Error); ok {
		statusCode = err.Code()
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
	})
}

func RegisterHTTP(srv HTTPServer, s Services) {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(encodeError),
	}

	syncHandler := kithttp.NewServer(
		makeSyncEndpoint(s.Runner),
		decodeEmptyRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/sync", "POST", syncHandler)

	if s.History != nil {
		historyHandler := kithttp.NewServer(
			makeHistoryEndpoint(s.History),
			decodeHistoryRequest,
			kithttp.EncodeJSONResponse,
			opts...,
		)
		srv.RegisterHandler("/history", "GET", historyHandler)
	}

	if s.Searcher != nil {
		searchHandler := kithttp.NewServer(
			makeSearchEndpoint(s.Searcher),
			decodeSearchRequest,
			kithttp.EncodeJSONResponse,
			opts...,
		)
		srv.RegisterHandler("/search", "GET", searchHandler)
	}

	if s.ReadingList != nil {
		readingListHandler := kithttp.NewServer(
			makeReadingListEndpoint(s.ReadingList),
			decodeEmptyRequest,
			encodeHTMLResponse,
			opts...,
		)
		srv.RegisterHandler("/readinglist", "GET", readingListHandler)
	}
}

// makeSyncEndpoint runs a pass. Partial failures are reported in the body
// with a 200, complete failures get the status of their cause.
func makeSyncEndpoint(runner Runner) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		report, err := runner.Run(ctx)
		if serr, ok := err.(*syncer.Error); ok {
			if serr.Type == syncer.CompleteFailure {
				return nil, errors.New(report.Message, errors.WithCode(errors.KindOf(serr.Cause).Code()))
			}
		} else if err != nil {
			return nil, err
		}

		return map[string]interface{}{
			"data": report,
		}, nil
	}
}

func decodeEmptyRequest(_ context.Context, _ *http.Request) (interface{}, error) {
	return nil, nil
}

func makeHistoryEndpoint(history History) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		limit, ok := r.(int)
		if !ok {
			return nil, errInvalidRequest
		}

		runs, err := history.ListRuns(limit)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"data": runs,
		}, nil
	}
}

func decodeHistoryRequest(_ context.Context, r *http.Request) (interface{}, error) {
	return parseLimit(r, defaultHistoryLimit)
}

type searchRequest struct {
	Q     string
	Limit int
}

func makeSearchEndpoint(searcher Searcher) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		req, ok := r.(searchRequest)
		if !ok {
			return nil, errInvalidRequest
		}

		hits, err := searcher.Search(req.Q, req.Limit)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"data": hits,
		}, nil
	}
}

func decodeSearchRequest(_ context.Context, r *http.Request) (interface{}, error) {
	limit, err := parseLimit(r, defaultSearchLimit)
	if err != nil {
		return nil, err
	}

	return searchRequest{
		Q:     r.URL.Query().Get("q"),
		Limit: limit,
	}, nil
}

func makeReadingListEndpoint(list ReadingList) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		return list.HTML()
	}
}

func encodeHTMLResponse(_ context.Context, w http.ResponseWriter, response interface{}) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := w.Write(response.([]byte))
	return err
}

func parseLimit(r *http.Request, def int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, errors.New("invalid limit: "+raw, errors.BadRequest())
	}
	return limit, nil
}
