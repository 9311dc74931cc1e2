// Package api provides an authenticated HTTP client for Google REST APIs
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
)

// TokenSource yields a valid access token, refreshing it when needed.
// auth.Manager satisfies this.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client is an HTTP client for Google REST APIs that attaches a Bearer
// token to every request and decodes the Google error envelope.
type Client struct {
	tokens     TokenSource
	underlying *http.Client
}

// NewClient creates a new authenticated API client
func NewClient(tokens TokenSource) *Client {
	return &Client{
		tokens: tokens,
		underlying: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError is a non-2xx response from a Google API
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Status)
}

// googleErrorEnvelope is the standard Google API error body
type googleErrorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// GetJSON performs an authenticated GET and decodes the JSON response
// into out. Query may be nil.
func (c *Client) GetJSON(ctx context.Context, rawURL string, query url.Values, out any) error {
	if len(query) > 0 {
		rawURL = rawURL + "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	return c.do(req, out)
}

// PostJSON performs an authenticated POST with a JSON body and decodes
// the JSON response into out. Out may be nil when the response body is
// not needed.
func (c *Client) PostJSON(ctx context.Context, rawURL string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// do attaches the access token, executes the request and decodes the
// response, mapping non-2xx bodies to *APIError.
func (c *Client) do(req *http.Request, out any) error {
	token, err := c.tokens.Token(req.Context())
	if err != nil {
		return fmt.Errorf("failed to get auth token: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	resp, err := c.underlying.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Status: resp.Status}

		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		var envelope googleErrorEnvelope
		if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
			apiErr.Message = envelope.Error.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
