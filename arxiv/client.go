package arxiv

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bobinette/papersync/errors"
	"github.com/bobinette/papersync/log"
	"github.com/bobinette/papersync/retry"
)

const (
	DefaultAPIURL     = "https://export.arxiv.org/api/query"
	DefaultAbsURL     = "https://arxiv.org/abs"
	DefaultInterval   = 3 * time.Second
	DefaultMaxResults = 100
)

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

type Config struct {
	APIURL           string `toml:"api_url"`
	AbsURL           string `toml:"abs_url"`
	RateLimitSeconds int    `toml:"rate_limit_seconds"`
	MaxResults       int    `toml:"max_results"`
	ScrapeMissing    bool   `toml:"scrape_missing"`
}

// Client sends the requests to arXiv. All of them, API queries and abstract
// pages alike, go through the same gate.
type Client struct {
	apiURL     string
	absURL     string
	maxResults int

	client HTTPClient
	gate   *Gate
	retry  retry.Options
	logger log.Logger
}

func NewClient(cfg Config, c HTTPClient, logger log.Logger) *Client {
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	absURL := strings.TrimRight(cfg.AbsURL, "/")
	if absURL == "" {
		absURL = DefaultAbsURL
	}
	interval := DefaultInterval
	if cfg.RateLimitSeconds > 0 {
		interval = time.Duration(cfg.RateLimitSeconds) * time.Second
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	return &Client{
		apiURL:     apiURL,
		absURL:     absURL,
		maxResults: maxResults,

		client: c,
		gate:   NewGate(interval),
		retry: retry.Options{
			Retryable: func(err error) bool { return errors.Is(err, errors.NetworkError) },
		},
		logger: logger,
	}
}

// MaxResults is the largest number of ids a single query can carry.
func (c *Client) MaxResults() int { return c.maxResults }

// Query fetches the feed of the papers identified by ids. Network failures
// are retried.
func (c *Client) Query(ctx context.Context, ids []string) ([]byte, error) {
	u := c.queryURL(ids)

	var body []byte
	err := retry.Do(ctx, c.retry, func() error {
		var err error
		body, err = c.get(ctx, u)
		if err != nil {
			c.logger.Warnf("arxiv: query failed: %v", err)
		}
		return err
	})
	return body, err
}

// Abstract fetches the HTML abstract page of a paper.
func (c *Client) Abstract(ctx context.Context, id string) ([]byte, error) {
	return c.get(ctx, fmt.Sprintf("%s/%s", c.absURL, id))
}

func (c *Client) queryURL(ids []string) string {
	query := url.Values{}
	query.Add("id_list", strings.Join(ids, ","))
	query.Add("max_results", strconv.Itoa(c.maxResults))
	return c.apiURL + "?" + query.Encode()
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	if err := c.gate.Wait(ctx); err != nil {
		return nil, errors.New("request cancelled", errors.WithKind(errors.NetworkError), errors.WithCause(err))
	}

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.New("could not build request", errors.WithKind(errors.Unknown), errors.WithCause(err))
	}
	req = req.WithContext(ctx)

	res, err := c.client.Do(req)
	if err != nil {
		return nil, errors.New("arXiv request failed", errors.WithKind(errors.NetworkError), errors.WithCause(err))
	}
	defer res.Body.Close()

	data, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, errors.New("could not read arXiv response", errors.WithKind(errors.NetworkError), errors.WithCause(err))
	}

	switch res.StatusCode {
	case http.StatusOK:
		return data, nil
	case http.StatusNotFound:
		return nil, errors.New("arXiv returned status 404", errors.WithKind(errors.NotFound))
	case http.StatusTooManyRequests:
		retryAfter := errors.DefaultRetryAfter
		if seconds, err := strconv.Atoi(strings.TrimSpace(res.Header.Get("Retry-After"))); err == nil && seconds > 0 {
			retryAfter = time.Duration(seconds) * time.Second
		}
		return nil, errors.New("rate limited by arXiv", errors.WithKind(errors.RateLimited), errors.WithRetryAfter(retryAfter))
	}
	return nil, errors.New(fmt.Sprintf("arXiv API returned status %d", res.StatusCode), errors.WithKind(errors.NetworkError))
}
