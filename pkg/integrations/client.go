package integrations

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Taxolotl/vintage-story-mod-api/pkg/errors"
	"github.com/Taxolotl/vintage-story-mod-api/pkg/httputil"
	"github.com/Taxolotl/vintage-story-mod-api/pkg/observability"
)

// RequestIDHeader carries a per-request correlation ID on every outgoing call.
const RequestIDHeader = "X-Request-ID"

// Client provides shared HTTP functionality for upstream API clients.
// It handles default headers, status mapping, optional retries and
// observability hooks. A Client holds no response state and is safe for
// concurrent use.
type Client struct {
	http    *http.Client
	headers map[string]string
	retry   httputil.Policy
	logger  *log.Logger
}

// NewClient creates a Client with the given default headers.
// Headers are applied to all requests made through this client.
// Pass nil for headers if no default headers are needed.
// Requests are attempted once; see [Client.SetRetry].
func NewClient(headers map[string]string) *Client {
	return &Client{
		http:    NewHTTPClient(),
		headers: headers,
		retry:   httputil.NoRetry,
		logger:  log.Default(),
	}
}

// SetHTTPClient replaces the underlying *http.Client. A nil client is ignored.
func (c *Client) SetHTTPClient(h *http.Client) {
	if h != nil {
		c.http = h
	}
}

// SetRetry sets the retry policy applied to every request.
func (c *Client) SetRetry(p httputil.Policy) { c.retry = p }

// SetLogger sets the logger used for request tracing. A nil logger is ignored.
func (c *Client) SetLogger(l *log.Logger) {
	if l != nil {
		c.logger = l
	}
}

// SetHeader sets a default header applied to all requests.
func (c *Client) SetHeader(key, value string) {
	if c.headers == nil {
		c.headers = make(map[string]string)
	}
	c.headers[key] = value
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
// Transport failures and unexpected statuses surface as NETWORK_ERROR,
// HTTP 404 as NOT_FOUND and undecodable bodies as PARSE_ERROR.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, rawURL string, headers map[string]string, v any) error {
	return c.retry.Do(ctx, func() error {
		body, err := c.doRequest(ctx, rawURL, headers)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(body, v); err != nil {
			return errors.Wrap(errors.ErrCodeParse, err, "decode response from %s", rawURL)
		}
		return nil
	})
}

func (c *Client) doRequest(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request for %s", rawURL)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)

	host, path := req.URL.Host, req.URL.Path
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		c.logger.Debug("request failed", "url", rawURL, "request_id", reqID, "err", err)
		return nil, httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", rawURL))
	}
	defer resp.Body.Close()

	elapsed := time.Since(start)
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, elapsed)
	c.logger.Debug("fetched", "url", rawURL, "status", resp.StatusCode, "request_id", reqID, "duration", elapsed.Round(time.Millisecond))

	if err := checkStatus(resp.StatusCode, rawURL); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read response from %s", rawURL))
	}
	return data, nil
}

func checkStatus(code int, rawURL string) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "GET %s: status %d", rawURL, code)
	case code >= 500 || code == http.StatusTooManyRequests:
		return httputil.Retryable(errors.New(errors.ErrCodeNetwork, "GET %s: status %d", rawURL, code))
	default:
		return errors.New(errors.ErrCodeNetwork, "GET %s: status %d", rawURL, code)
	}
}

// Endpoint joins a base URL and path segments.
// An unparsable base falls back to plain slash concatenation so the error
// surfaces from the request itself.
func Endpoint(base string, segments ...string) string {
	u, err := url.JoinPath(base, segments...)
	if err != nil {
		return strings.TrimSuffix(base, "/") + "/" + strings.Join(segments, "/")
	}
	return u
}
