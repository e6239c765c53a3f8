package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"stockchat/internal/logger"
	"stockchat/internal/types"
)

// Client is an HTTP client with common configuration shared by every upstream adapter
type Client struct {
	httpClient *http.Client
	baseURL    string
	headers    map[string]string
	limiter    *RateLimiter
	useLogging bool
}

func (c *Client) logDebug(ctx context.Context, msg string, args ...any) {
	if c.useLogging {
		logger.Debug(ctx, msg, args...)
	}
}

func (c *Client) logWarn(ctx context.Context, msg string, args ...any) {
	if c.useLogging {
		logger.Warn(ctx, msg, args...)
	}
}

// ClientOption configures the API client
type ClientOption func(*Client)

// WithTimeout bounds every request made by the client
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHeader sets a default header for all requests
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithRateLimiter makes every request wait for a limiter token first
func WithRateLimiter(l *RateLimiter) ClientOption {
	return func(c *Client) {
		c.limiter = l
	}
}

func WithLogging(enabled bool) ClientOption {
	return func(c *Client) {
		c.useLogging = enabled
	}
}

// WithHTTPClient replaces the underlying transport client, keeping the configured timeout
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		timeout := c.httpClient.Timeout
		c.httpClient = hc
		if c.httpClient.Timeout == 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient creates a new API client with the given options
func NewClient(opts ...ClientOption) *Client {
	client := &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		headers: make(map[string]string),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Request represents an HTTP request configuration
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    any
	Headers map[string]string
	ctx     context.Context
}

// Response represents an HTTP response
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

func NewRequest(method, path string) *Request {
	return &Request{
		Method:  method,
		Path:    path,
		Query:   url.Values{},
		Headers: make(map[string]string),
		ctx:     context.Background(),
	}
}

func (r *Request) WithContext(ctx context.Context) *Request {
	r.ctx = ctx
	return r
}

// WithBody sets the request body (will be JSON encoded)
func (r *Request) WithBody(body any) *Request {
	r.Body = body
	return r
}

func (r *Request) WithHeader(key, value string) *Request {
	r.Headers[key] = value
	return r
}

func (r *Request) WithParam(key, value string) *Request {
	r.Query.Set(key, value)
	return r
}

// Do executes the HTTP request. Transport failures and non-2xx statuses are
// returned wrapped in types.ErrUpstreamUnavailable.
func (c *Client) Do(req *Request) (*Response, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var bodyReader io.Reader
	if req.Body != nil {
		jsonBody, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	httpReq, err := http.NewRequestWithContext(req.ctx, req.Method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	for key, value := range c.headers {
		httpReq.Header.Set(key, value)
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
	if req.Body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(req.ctx); err != nil {
			return nil, fmt.Errorf("%w: rate limiter: %v", types.ErrUpstreamUnavailable, err)
		}
	}

	c.logDebug(req.ctx, "HTTP Request", "method", req.Method, "url", c.baseURL+req.Path)

	startTime := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logWarn(req.ctx, "HTTP request failed", "method", req.Method, "path", req.Path, "error", err)
		return nil, fmt.Errorf("%w: %v", types.ErrUpstreamUnavailable, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", types.ErrUpstreamUnavailable, err)
	}

	c.logDebug(req.ctx, "HTTP Response",
		"method", req.Method,
		"path", req.Path,
		"status", httpResp.StatusCode,
		"duration_ms", time.Since(startTime).Milliseconds(),
		"body_size", len(body))

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		c.logWarn(req.ctx, "HTTP error response", "method", req.Method, "path", req.Path, "status", httpResp.StatusCode)
		return nil, fmt.Errorf("%w: HTTP %d: %s", types.ErrUpstreamUnavailable, httpResp.StatusCode, truncate(string(body), 200))
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Body:       body,
		Headers:    httpResp.Header,
	}, nil
}

// GET performs a GET request with optional query parameters
func (c *Client) GET(ctx context.Context, path string, params url.Values, headers ...map[string]string) (*Response, error) {
	req := NewRequest(http.MethodGet, path).WithContext(ctx)
	for key := range params {
		req.WithParam(key, params.Get(key))
	}
	if len(headers) > 0 {
		for key, value := range headers[0] {
			req.WithHeader(key, value)
		}
	}
	return c.Do(req)
}

// POST performs a POST request with a JSON body
func (c *Client) POST(ctx context.Context, path string, body any, headers ...map[string]string) (*Response, error) {
	req := NewRequest(http.MethodPost, path).
		WithContext(ctx).
		WithBody(body)
	if len(headers) > 0 {
		for key, value := range headers[0] {
			req.WithHeader(key, value)
		}
	}
	return c.Do(req)
}

// ParseJSON parses the response body as JSON into v
func (r *Response) ParseJSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%w: failed to parse JSON response: %v", types.ErrUpstreamUnavailable, err)
	}
	return nil
}

func (r *Response) String() string {
	return string(r.Body)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
