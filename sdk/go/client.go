// Package rsvp is a Go client for the RSVP server's JSON API.
package rsvp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config holds the configuration for the RSVP client.
type Config struct {
	// BaseURL is the root URL of the RSVP server.
	// Examples: "https://rsvp.example.com" or "https://rsvp.example.com/api/v1"
	// The "/api/v1" suffix is appended automatically if missing.
	BaseURL string

	// HTTPClient is an optional custom HTTP client.
	// If nil, a default client with a 30s timeout is used. The server waits
	// on the email provider before answering, so keep this generous.
	HTTPClient *http.Client

	// UserAgent is sent with every request.
	// Default: "rsvp-go"
	UserAgent string
}

func (c *Config) defaults() {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if c.UserAgent == "" {
		c.UserAgent = "rsvp-go"
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	if !strings.HasSuffix(c.BaseURL, "/api/v1") {
		c.BaseURL = c.BaseURL + "/api/v1"
	}
}

// Client submits RSVPs to an RSVP server.
type Client struct {
	cfg Config
}

// NewClient creates a new client with the given configuration.
func NewClient(cfg Config) *Client {
	cfg.defaults()
	return &Client{cfg: cfg}
}

// Submit sends one RSVP. The server validates it and forwards it to the
// couple exactly once.
//
// Validation failures are returned as an *APIError with Code
// "validation_failed" and one Details entry per offending field. A failed
// delivery is an *APIError with Code "delivery_failed"; the client never
// retries.
func (c *Client) Submit(ctx context.Context, sub Submission) (*Receipt, error) {
	body, err := c.post(ctx, "/rsvp", sub)
	if err != nil {
		return nil, err
	}

	var receipt Receipt
	if err := json.Unmarshal(body, &receipt); err != nil {
		return nil, fmt.Errorf("rsvp: failed to parse receipt: %w", err)
	}
	return &receipt, nil
}

// post sends a POST request to the RSVP API.
func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("rsvp: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("rsvp: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rsvp: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("rsvp: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, parseAPIError(resp.StatusCode, body)
	}

	return body, nil
}
