package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Fetcher defines the interface for talking to the analytics backend.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	FetchProducts(ctx context.Context, params url.Values) (*ProductPage, error)
	FetchStats(ctx context.Context, params url.Values) (*Stats, error)
	Parse(ctx context.Context, query string, limit int) (*ParseResult, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the marketplace analytics HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIBase   = "127.0.0.1:5000"
	defaultUserAgent = "wbscope/0.1"
	requestTimeout   = 30 * time.Second
)

// StatusError reports a non-2xx HTTP response from the backend.
type StatusError struct {
	Code int
	Path string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Code)
}

// NewClient builds a Client using the provided apiBase host:port or URL value.
func NewClient(apiBase string) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchProducts retrieves one filtered, sorted page of the catalog.
func (c *Client) FetchProducts(ctx context.Context, params url.Values) (*ProductPage, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/api/products/", RawQuery: params.Encode()}
	var payload ProductPage
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchStats retrieves aggregate statistics for the current filter predicate.
// The params must not carry a page key; stats are page-independent.
func (c *Client) FetchStats(ctx context.Context, params url.Values) (*Stats, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/api/products/stats/", RawQuery: params.Encode()}
	var payload Stats
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Parse asks the backend to scrape and ingest up to limit products matching
// the query. The returned result may report an application-level failure
// even on a 2xx response.
func (c *Client) Parse(ctx context.Context, query string, limit int) (*ParseResult, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	body, err := json.Marshal(parseRequest{Query: query, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("encode parse request: %w", err)
	}
	rel := &url.URL{Path: "/api/products/parse/"}
	var payload ParseResult
	if err := c.doURL(ctx, http.MethodPost, rel, body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body []byte, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, Path: rel.Path}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		trimmed = defaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", apiBase, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
