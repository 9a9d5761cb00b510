package games

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public college football results API.
const DefaultBaseURL = "https://api.collegefootballdata.com"

// Client defaults.
const (
	DefaultTimeout = 30 * time.Second
	DefaultRate    = rate.Limit(2) // requests per second
	DefaultBurst   = 1
)

// maxErrorBody bounds how much of a failed response is quoted in the error.
const maxErrorBody = 512

// ErrUnexpectedStatus is returned for any non-2xx response.
var ErrUnexpectedStatus = errors.New("games: unexpected status")

// Client fetches season results from the games feed.
// A Client is safe for concurrent use; all calls share one rate limiter.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at another feed (a mirror or a test server).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithAPIKey sends key as a bearer token on every request.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRateLimit sets the request rate and burst. rate.Inf disables limiting.
func WithRateLimit(r rate.Limit, burst int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(r, burst)
	}
}

// NewClient creates a feed client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(DefaultRate, DefaultBurst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchSeason returns every game of the given season.
func (c *Client) FetchSeason(ctx context.Context, year int) ([]Game, error) {
	if year <= 0 {
		return nil, errors.Errorf("games: invalid season %d", year)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "games: parse base url")
	}
	u = u.JoinPath("games")
	q := u.Query()
	q.Set("year", strconv.Itoa(year))
	u.RawQuery = q.Encode()

	if err = c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "games: rate limit")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "games: create request")
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "games: fetch season %d", year)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, errors.Wrap(ErrUnexpectedStatus, fmt.Sprintf("season %d: status=%d body=%s", year, resp.StatusCode, body))
	}

	var out []Game
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Wrapf(err, "games: decode season %d", year)
	}

	return out, nil
}
