// Package client provides an HTTP client for the Rick and Morty REST API.
package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/raphaelgruber/mortydex/internal/config"
	"github.com/raphaelgruber/mortydex/internal/metrics"
	"github.com/raphaelgruber/mortydex/internal/models"
	"github.com/raphaelgruber/mortydex/internal/parser"
)

const userAgent = "mortydex/0.1"

// Client is an HTTP client for the Rick and Morty API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Collector
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMetrics records request timings in m.
func WithMetrics(m *metrics.Collector) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a new API client.
// If baseURL is empty, config.DefaultAPIURL is used.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = config.DefaultAPIURL
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: config.DefaultTimeout,
		},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API base URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Response is the raw result of a GET request that reached the server.
type Response struct {
	StatusCode int
	Body       []byte
}

// StatusError is returned when the API answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API returned HTTP %d\nBody:\n%s", e.StatusCode, e.Body)
}

// Get issues a GET request to rawURL with optional query parameters.
// An error is returned only when the request could not complete; any HTTP
// status is reported through Response.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values) (*Response, error) {
	target := rawURL
	if len(params) > 0 {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("parse url: %w", err)
		}
		q := u.Query()
		for k, vs := range params {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
		target = u.String()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("http request", "method", http.MethodGet, "url", target)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("http response", "url", target, "status", resp.StatusCode, "bytes", len(body))

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// getOK performs a GET and converts non-200 statuses into *StatusError.
func (c *Client) getOK(ctx context.Context, op, rawURL string, params url.Values) ([]byte, error) {
	start := time.Now()
	resp, err := c.Get(ctx, rawURL, params)
	if err == nil && resp.StatusCode != http.StatusOK {
		err = &StatusError{StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}
	c.metrics.RecordTiming(op, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// SearchCharacters returns the characters whose name matches term.
// Only the first page of results is read.
func (c *Client) SearchCharacters(ctx context.Context, term string) ([]models.Character, error) {
	body, err := c.getOK(ctx, metrics.OpCharacterSearch, c.baseURL+"/character/", url.Values{"name": {term}})
	if err != nil {
		return nil, err
	}
	return parser.ParseCharacters(body), nil
}

// EpisodeName fetches the episode resource at episodeURL and returns its title.
func (c *Client) EpisodeName(ctx context.Context, episodeURL string) (string, error) {
	body, err := c.getOK(ctx, metrics.OpEpisodeFetch, episodeURL, nil)
	if err != nil {
		return "", err
	}
	return parser.ParseEpisodeName(body)
}
