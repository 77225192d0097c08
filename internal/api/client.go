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

	"github.com/sirupsen/logrus"

	"github.com/voyara/voyara-client/internal/models"
)

// TokenSource supplies the bearer token for authenticated requests
type TokenSource interface {
	Token() (string, error)
}

// UserSource supplies the stored user for identity-header requests
type UserSource interface {
	User() (models.User, error)
}

// Credentials injects authentication into an outgoing request. Every
// request goes through exactly one Credentials implementation; there is no
// per-call-site auth wiring.
type Credentials interface {
	Apply(req *http.Request) error
}

// BearerCredentials authenticates with "Authorization: Bearer <token>"
type BearerCredentials struct {
	Source TokenSource
}

// Apply sets the Authorization header, failing before any request is sent
// when no token is stored
func (b BearerCredentials) Apply(req *http.Request) error {
	token, err := b.Source.Token()
	if err != nil {
		return fmt.Errorf("missing bearer token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

// IdentityHeaderCredentials authenticates with X-User-ID and X-User-Email
// headers sourced from the stored user object
type IdentityHeaderCredentials struct {
	Source UserSource
}

// Apply sets the identity headers, failing before any request is sent when
// no user is stored
func (i IdentityHeaderCredentials) Apply(req *http.Request) error {
	user, err := i.Source.User()
	if err != nil {
		return fmt.Errorf("missing stored user: %w", err)
	}
	if user.Email == "" {
		return fmt.Errorf("stored user has no email")
	}
	req.Header.Set("X-User-ID", user.ID)
	req.Header.Set("X-User-Email", user.Email)
	return nil
}

// AnonymousCredentials sends no authentication; used for public endpoints
type AnonymousCredentials struct{}

// Apply is a no-op
func (AnonymousCredentials) Apply(*http.Request) error { return nil }

// Config holds configuration for the API client
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client is the typed HTTP client all endpoint wrappers are built on.
// It owns URL building, JSON encoding, auth injection and error-envelope
// decoding; callers deal only in request/response structs.
type Client struct {
	baseURL   string
	userAgent string
	creds     Credentials
	client    *http.Client
	logger    *logrus.Logger
}

// New creates a new API client
func New(cfg Config, creds Credentials, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.New()
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	if creds == nil {
		creds = AnonymousCredentials{}
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		creds:     creds,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// WithCredentials returns a copy of the client that authenticates with the
// given credentials. The underlying transport is shared.
func (c *Client) WithCredentials(creds Credentials) *Client {
	clone := *c
	clone.creds = creds
	return &clone
}

// BaseURL returns the configured API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET request and decodes the JSON response into out
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body and decodes the response into out
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with a JSON body and decodes the response into out
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE request
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Do builds, authenticates and sends one request. A nil body sends no
// payload; a nil out discards the response body. Non-2xx responses are
// returned as *Error carrying the server's message.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	url := c.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	if err := c.creds.Apply(req); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"method": method,
		"url":    url,
	}).Debug("API request")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newError(resp.StatusCode, respBody)
		c.logger.WithFields(logrus.Fields{
			"method":  method,
			"url":     url,
			"status":  resp.StatusCode,
			"message": apiErr.Message,
		}).Warn("API error response")
		return apiErr
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
