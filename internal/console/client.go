// Package console is a thin client for the console and data-plane REST APIs
// of an Appwrite-compatible backend. It carries no retry or caching logic;
// callers decide how to react to conflicts and failures.
package console

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// UniqueID asks the backend to assign a server-generated identifier.
const UniqueID = "unique()"

// Session is an authenticated admin session. The cookie value is opaque and
// never persisted; it lives only for the duration of a run.
type Session struct {
	Cookie string
}

// Client issues JSON requests against a backend endpoint. Authentication
// precedence per request: the admin session cookie when present, otherwise
// the project/API-key header pair. A zero-auth client is valid for the
// account-creation and session-minting endpoints.
type Client struct {
	Endpoint  string
	Session   string
	ProjectID string
	APIKey    string

	HTTPClient *http.Client
	// Limiter, when set, throttles outgoing requests with a token bucket.
	Limiter *rate.Limiter
}

// NewClient creates a client for the given endpoint (e.g. "http://localhost/v1").
func NewClient(endpoint string) *Client {
	return &Client{
		Endpoint:   strings.TrimRight(endpoint, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// WithSession returns a copy of the client authenticated by the given session.
func (c *Client) WithSession(session Session) *Client {
	clone := *c
	clone.Session = session.Cookie
	return &clone
}

// WithKey returns a copy of the client authenticated by a project-scoped API key.
func (c *Client) WithKey(projectID, apiKey string) *Client {
	clone := *c
	clone.Session = ""
	clone.ProjectID = projectID
	clone.APIKey = apiKey
	return &clone
}

// InsecureHTTPClient returns an HTTP client that skips TLS certificate
// verification, for local instances behind self-signed certificates.
func InsecureHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	return &http.Client{Timeout: 30 * time.Second, Transport: transport}
}

// Do issues a single request. The body, when non-nil, is JSON-encoded.
// The caller owns the response body.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	u := c.Endpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Session != "" {
		req.Header.Set("Cookie", c.Session)
	} else if c.APIKey != "" {
		req.Header.Set("X-Appwrite-Project", c.ProjectID)
		req.Header.Set("X-Appwrite-Key", c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	return resp, nil
}

// DoJSON issues a request and decodes a 2xx JSON response into out (which may
// be nil). Non-2xx responses are returned as *APIError.
func (c *Client) DoJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	resp, err := c.Do(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	data, err := ReadBody(resp)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: parse response: %w", method, path, err)
	}
	return nil
}

// ReadBody drains and closes a response body.
func ReadBody(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return data, nil
}
