package client

import (
	"encoding/json"
	"net/http"
	"time"
)

const (
	DefaultServer  = "http://localhost:8001"
	DefaultTimeout = 30 * time.Second
)

// Client is the folio API client.
type Client struct {
	adminToken string
	server     string
	httpClient *http.Client
}

// Option configures the client.
type Option func(*Client)

// New creates a new folio client. adminToken may be empty; it is only
// needed for project uploads and reading the contact inbox.
func New(adminToken string, opts ...Option) *Client {
	c := &Client{
		adminToken: adminToken,
		server:     DefaultServer,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithServer sets a custom server URL.
func WithServer(server string) Option {
	return func(c *Client) {
		if server != "" {
			c.server = server
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// ServerURL returns the configured server URL.
func (c *Client) ServerURL() string {
	return c.server
}

func (c *Client) setAuthHeaders(req *http.Request) {
	if c.adminToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.adminToken)
	}
}

// do sends req and maps transport and status failures onto the client's error types.
// On success the caller owns resp.Body.
func (c *Client) do(req *http.Request, fallbackMsg string, okStatus ...int) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}

	for _, status := range okStatus {
		if resp.StatusCode == status {
			return resp, nil
		}
	}
	defer resp.Body.Close()

	var errResp struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	json.NewDecoder(resp.Body).Decode(&errResp)
	msg := errResp.Error
	if msg == "" {
		msg = errResp.Detail
	}
	if msg == "" {
		msg = fallbackMsg
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &AuthError{Message: msg}
	case http.StatusNotFound:
		return nil, &NotFoundError{Message: msg}
	}
	return nil, &APIError{
		StatusCode: resp.StatusCode,
		Message:    msg,
	}
}
