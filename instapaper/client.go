package instapaper

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bobinette/papersync/errors"
	"github.com/bobinette/papersync/log"
	"github.com/bobinette/papersync/oauth"
)

const DefaultBaseURL = "https://www.instapaper.com"

const (
	accessTokenPath = "/api/1/oauth/access_token"
	verifyPath      = "/api/1/account/verify_credentials"
	listPath        = "/api/1/bookmarks/list"
	archivePath     = "/api/1/bookmarks/archive"

	listLimit = 500
)

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

type Config struct {
	Username       string `toml:"username"`
	Password       string `toml:"password"`
	ConsumerKey    string `toml:"consumer_key"`
	ConsumerSecret string `toml:"consumer_secret"`
	BaseURL        string `toml:"base_url"`
}

// session holds the access token pair of the authenticated user. It starts
// empty, is filled by the xAuth exchange and emptied again whenever the API
// rejects the tokens.
type session struct {
	mu     sync.Mutex
	token  oauth.Tokens
	filled bool
}

func (s *session) tokens() (oauth.Tokens, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.filled
}

func (s *session) set(t oauth.Tokens) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = t
	s.filled = true
}

func (s *session) invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = oauth.Tokens{}
	s.filled = false
}

// Client talks to the Instapaper full API. Every request is a form encoded
// POST signed with OAuth 1.0a.
type Client struct {
	baseURL string
	client  HTTPClient
	signer  *oauth.Signer
	logger  log.Logger

	username       string
	password       string
	consumerKey    string
	consumerSecret string

	session *session
}

func NewClient(cfg Config, c HTTPClient, signer *oauth.Signer, logger log.Logger) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if signer == nil {
		signer = &oauth.Signer{}
	}

	return &Client{
		baseURL: baseURL,
		client:  c,
		signer:  signer,
		logger:  logger,

		username:       cfg.Username,
		password:       cfg.Password,
		consumerKey:    cfg.ConsumerKey,
		consumerSecret: cfg.ConsumerSecret,

		session: &session{},
	}
}

// VerifyCredentials obtains the access tokens if needed and checks them
// against the account endpoint.
func (c *Client) VerifyCredentials(ctx context.Context) error {
	if _, err := c.accessToken(ctx); err != nil {
		return err
	}

	_, err := c.request(ctx, verifyPath, nil)
	return err
}

// ListBookmarks returns the raw body of the bookmark list of the unread folder.
func (c *Client) ListBookmarks(ctx context.Context) ([]byte, error) {
	return c.request(ctx, listPath, map[string]string{
		"limit": strconv.Itoa(listLimit),
	})
}

func (c *Client) Archive(ctx context.Context, bookmarkID string) error {
	_, err := c.request(ctx, archivePath, map[string]string{
		"bookmark_id": bookmarkID,
	})
	return err
}

func (c *Client) accessToken(ctx context.Context) (oauth.Tokens, error) {
	if tokens, ok := c.session.tokens(); ok {
		return tokens, nil
	}

	creds := oauth.Credentials{
		ConsumerKey:    c.consumerKey,
		ConsumerSecret: c.consumerSecret,
	}
	body, err := c.post(ctx, accessTokenPath, map[string]string{
		"x_auth_username": c.username,
		"x_auth_password": c.password,
		"x_auth_mode":     "client_auth",
	}, creds)
	if err != nil {
		return oauth.Tokens{}, err
	}

	tokens, ok := oauth.ParseTokenResponse(string(body))
	if !ok {
		return oauth.Tokens{}, errors.New("failed to parse OAuth token response", errors.WithKind(errors.InvalidResponse))
	}

	c.session.set(tokens)
	c.logger.Debugf("instapaper: obtained access token for %s", c.username)
	return tokens, nil
}

func (c *Client) request(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	tokens, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	creds := oauth.Credentials{
		ConsumerKey:    c.consumerKey,
		ConsumerSecret: c.consumerSecret,
		Token:          tokens.Token,
		TokenSecret:    tokens.Secret,
	}
	body, err := c.post(ctx, path, params, creds)
	if errors.Is(err, errors.AuthFailed) {
		c.session.invalidate()
	}
	return body, err
}

func (c *Client) post(ctx context.Context, path string, params map[string]string, creds oauth.Credentials) ([]byte, error) {
	endpoint := c.baseURL + path

	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}

	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.New("could not build request", errors.WithKind(errors.Unknown), errors.WithCause(err))
	}
	req = req.WithContext(ctx)
	req.Header.Set("Authorization", c.signer.Sign(http.MethodPost, endpoint, params, creds))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, errors.New(fmt.Sprintf("request to %s failed", path), errors.WithKind(errors.NetworkError), errors.WithCause(err))
	}
	defer res.Body.Close()

	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, errors.New("could not read response body", errors.WithKind(errors.NetworkError), errors.WithCause(err))
	}

	if err := checkStatus(res); err != nil {
		return nil, err
	}
	return body, nil
}

func checkStatus(res *http.Response) error {
	switch res.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.New("invalid Instapaper credentials", errors.WithKind(errors.AuthFailed))
	case http.StatusTooManyRequests:
		return errors.New("rate limited by Instapaper",
			errors.WithKind(errors.RateLimited),
			errors.WithRetryAfter(parseRetryAfter(res.Header.Get("Retry-After"))),
		)
	}
	return errors.New(fmt.Sprintf("unexpected status code: %d", res.StatusCode), errors.WithKind(errors.InvalidResponse))
}

// parseRetryAfter reads a delay in seconds, falling back on the default when
// the header is missing or not a positive integer.
func parseRetryAfter(v string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || seconds <= 0 {
		return errors.DefaultRetryAfter
	}
	return time.Duration(seconds) * time.Second
}
