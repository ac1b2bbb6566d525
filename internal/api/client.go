// Package api provides the HTTP adapter through which all marketplace
// network I/O passes. It attaches bearer authentication, correlates
// requests, and centralizes the session-expiry and server-error
// behavior so no caller has to duplicate it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/logging"
)

// TokenSource supplies the current session bearer token, or "" when
// the client is anonymous.
type TokenSource func() string

// Hooks are invoked by the client when a response demands a global
// reaction. Both are optional.
type Hooks struct {
	// Unauthorized runs once per 401 response, before the error is
	// returned to the caller. The session store uses it to tear the
	// session down.
	Unauthorized func()

	// ServerError runs for every 5xx response with the status code.
	ServerError func(status int)
}

// Client is a thin JSON client for the marketplace REST API. It is the
// single choke point for outgoing requests: every call carries the
// session token (when present) and a correlation id, and every
// response is inspected for the global 401/5xx cases.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	hooks      Hooks
}

// NewClient creates a marketplace API client rooted at baseURL.
// tokens may be nil for an always-anonymous client.
func NewClient(baseURL string, tokens TokenSource, hooks Hooks) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokens: tokens,
		hooks:  hooks,
	}
}

// SetHooks replaces the client's response hooks. The session store
// registers itself here after construction to break the client/session
// initialization cycle.
func (c *Client) SetHooks(hooks Hooks) {
	c.hooks = hooks
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// RequestOption customizes a single request.
type RequestOption func(*requestOptions)

type requestOptions struct {
	token string
}

// WithToken overrides the session token for one request. The login
// flow uses it to probe seller approval with the token that was just
// issued, before any session exists.
func WithToken(token string) RequestOption {
	return func(o *requestOptions) { o.token = token }
}

// Get performs an HTTP GET request and unmarshals the JSON response.
func (c *Client) Get(ctx context.Context, path string, result interface{}, opts ...RequestOption) error {
	return c.do(ctx, http.MethodGet, path, nil, result, opts...)
}

// Post performs an HTTP POST request with an optional JSON body and
// unmarshals the JSON response.
func (c *Client) Post(ctx context.Context, path string, body, result interface{}, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPost, path, body, result, opts...)
}

// Put performs an HTTP PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, path string, body, result interface{}, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPut, path, body, result, opts...)
}

// Delete performs an HTTP DELETE request.
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, opts...)
}

// do builds the request, attaches auth and correlation headers,
// executes it, and routes the response through the global error
// handling. No automatic retry is applied; callers decide whether a
// failed request is worth repeating.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	result interface{},
	opts ...RequestOption,
) error {
	var ro requestOptions
	for _, opt := range opts {
		opt(&ro)
	}

	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	token := ro.token
	if token == "" && c.tokens != nil {
		token = c.tokens()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request %s %s: %w", method, path, err)
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return fmt.Errorf("reading response body: %w", readErr)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		logging.Warn("session rejected by server",
			"method", method, "path", path)
		if c.hooks.Unauthorized != nil {
			c.hooks.Unauthorized()
		}
		return &AuthError{Method: method, Path: path}
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		logging.Error("server error",
			"method", method, "path", path, "status", resp.StatusCode)
		if c.hooks.ServerError != nil {
			c.hooks.ServerError(resp.StatusCode)
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Message:    serverMessage(respBody),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Message:    serverMessage(respBody),
		}
	}

	// No content to parse (e.g. 204).
	if result == nil || resp.StatusCode == http.StatusNoContent || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("unmarshaling response from %s %s: %w", method, path, err)
	}

	return nil
}

// serverMessage extracts a human-readable message from an error
// response body. The backend returns either a bare string or a JSON
// object with a message field.
func serverMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var obj struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &obj); err == nil {
		if obj.Message != "" {
			return obj.Message
		}
		if obj.Error != "" {
			return obj.Error
		}
	}

	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s
	}

	return trimmed
}
