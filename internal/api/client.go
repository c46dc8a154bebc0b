package api

import (
	"bytes"
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

	"golang.org/x/sync/singleflight"

	"github.com/pagemark/pagemark/internal/errors"
)

// Client talks to the search backend. Safe for concurrent use.
type Client struct {
	baseURL string
	engine  Engine
	http    *http.Client

	// presets collapses concurrent /jsonl_index fetches into one request.
	presets singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithEngine selects the free-text search endpoint.
func WithEngine(e Engine) Option {
	return func(c *Client) { c.engine = e }
}

// WithTimeout sets the per-request timeout. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		engine:  EngineJSONL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Engine returns the active free-text engine.
func (c *Client) Engine() Engine {
	return c.engine
}

// BaseURL returns the backend root URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Search fetches one page of free-text results through the configured
// engine. page is 1-based. The returned slice may be empty; that is not
// an error.
func (c *Client) Search(ctx context.Context, query string, page, perPage int) ([]Hit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.ValidationError("query must not be empty", nil)
	}
	if page < 1 {
		return nil, errors.ValidationError(fmt.Sprintf("page must be >= 1, got %d", page), nil)
	}

	start := time.Now()
	var (
		hits []Hit
		err  error
	)
	switch c.engine {
	case EngineTypesense:
		hits, err = c.submitSearch(ctx, query, page)
	default:
		hits, err = c.jsonlSearch(ctx, query, page, perPage)
	}
	if err != nil {
		slog.Warn("search_failed",
			slog.String("engine", string(c.engine)),
			slog.String("query", query),
			slog.Int("page", page),
			slog.String("error", err.Error()))
		return nil, err
	}

	slog.Debug("search_page_fetched",
		slog.String("engine", string(c.engine)),
		slog.String("query", query),
		slog.Int("page", page),
		slog.Int("hits", len(hits)),
		slog.Duration("elapsed", time.Since(start)))
	return hits, nil
}

// PresetSearch fetches one page of a preset document set.
func (c *Client) PresetSearch(ctx context.Context, file string, page, perPage int) ([]Hit, error) {
	if file == "" {
		return nil, errors.ValidationError("preset file must not be empty", nil)
	}
	if page < 1 {
		return nil, errors.ValidationError(fmt.Sprintf("page must be >= 1, got %d", page), nil)
	}

	q := url.Values{}
	q.Set("file", file)
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))

	env, err := c.getEnvelope(ctx, "/preset_jsonl?"+q.Encode())
	if err != nil {
		return nil, err
	}
	return env.hitList(), nil
}

// ListPresets fetches the preset directory listing (/jsonl_index).
// Concurrent callers share a single request.
func (c *Client) ListPresets(ctx context.Context) ([]string, error) {
	v, err, _ := c.presets.Do("jsonl_index", func() (interface{}, error) {
		body, err := c.get(ctx, "/jsonl_index")
		if err != nil {
			return nil, err
		}

		var resp indexResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, errors.Wrap(errors.ErrCodeResponseDecode, err)
		}
		if resp.Error != "" {
			return nil, errors.BackendError(resp.Error)
		}
		return resp.Files, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// jsonlSearch queries GET /search_jsonl.
func (c *Client) jsonlSearch(ctx context.Context, query string, page, perPage int) ([]Hit, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))

	env, err := c.getEnvelope(ctx, "/search_jsonl?"+q.Encode())
	if err != nil {
		return nil, err
	}
	return env.hitList(), nil
}

// submitSearch queries POST /submit. The endpoint has no per_page
// parameter; page size is server-side.
func (c *Client) submitSearch(ctx context.Context, query string, page int) ([]Hit, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"text": query,
		"page": page,
	})
	if err != nil {
		return nil, errors.InternalError("failed to encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/submit", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.InternalError("failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, errors.Wrap(errors.ErrCodeResponseDecode, err)
	}
	if env.Error != "" {
		return nil, errors.BackendError(env.Error)
	}
	return env.hitList(), nil
}

// getEnvelope performs a GET and decodes the common hit envelope,
// surfacing a backend-reported error field as a backend error.
func (c *Client) getEnvelope(ctx context.Context, path string) (*envelope, error) {
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, errors.Wrap(errors.ErrCodeResponseDecode, err)
	}
	if env.Error != "" {
		return nil, errors.BackendError(env.Error)
	}
	return &env, nil
}

// get performs a GET request against the backend.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, errors.InternalError("failed to build request", err)
	}
	return c.do(req)
}

// do executes the request and applies the transport error taxonomy:
// network failures and non-2xx statuses become retryable network errors.
// A body carrying a backend {error} field on a non-2xx response is
// preferred over the bare status text, matching what the backend sends.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.NetworkError(fmt.Sprintf("request to %s failed: %v", req.URL.Path, err), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NetworkError("failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env envelope
		if json.Unmarshal(body, &env) == nil && env.Error != "" {
			return nil, errors.BackendError(env.Error)
		}
		return nil, errors.StatusError(resp.Status, resp.StatusCode)
	}

	return body, nil
}
