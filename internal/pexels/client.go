package pexels

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Searcher defines the remote search call. It is implemented by *Client and
// can be replaced in tests.
type Searcher interface {
	Search(ctx context.Context, query, apiKey string) ([]Photo, error)
}

// Ensure Client implements Searcher at compile time.
var _ Searcher = (*Client)(nil)

const (
	DefaultBaseURL   = "https://api.pexels.com"
	DefaultPerPage   = 15
	defaultUserAgent = "pexgrid/0.1"
	maxBodyBytes     = 4 << 20
)

// APIError is returned for non-success responses. Message holds the
// server-provided text and may be empty.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("search returned status %d", e.Status)
}

// Options configure a Client.
type Options struct {
	BaseURL    string
	PerPage    int
	Timeout    time.Duration // zero disables the client timeout
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client talks to the Pexels search API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	perPage   int
	userAgent string
	logger    *slog.Logger
}

// NewClient builds a Client. An empty BaseURL uses the public API.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL:   base,
		http:      httpClient,
		perPage:   perPage,
		userAgent: defaultUserAgent,
		logger:    logger.With(slog.String("component", "pexels")),
	}, nil
}

// Search runs a photo search authenticated with apiKey.
func (c *Client) Search(ctx context.Context, query, apiKey string) ([]Photo, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("query", query)
	values.Set("per_page", strconv.Itoa(c.perPage))
	rel := &url.URL{Path: "/v1/search", RawQuery: values.Encode()}
	reqURL := c.baseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Authorization", apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body := io.LimitReader(resp.Body, maxBodyBytes)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload ErrorResponse
		if err := json.NewDecoder(body).Decode(&payload); err == nil {
			apiErr.Message = strings.TrimSpace(payload.Error)
		}
		c.logger.Warn("search failed",
			slog.String("query", query),
			slog.Int("status", resp.StatusCode),
			slog.String("message", apiErr.Message))
		return nil, apiErr
	}

	photos, err := DecodePhotos(body)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("search completed",
		slog.String("query", query),
		slog.Int("results", len(photos)))
	return photos, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
