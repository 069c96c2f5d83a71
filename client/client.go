// Package client is the data-access side of the portfolio front end: it talks
// to the API, falls back to the bundled document, and drives admin edits.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Pratheesh-555/My-Portfolio/portfolio"
)

// ErrNetwork means the API could not be reached at all.
var ErrNetwork = errors.New("portfolio API unreachable")

// APIError is a non-2xx reply from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("portfolio API returned %d", e.StatusCode)
	}
	return fmt.Sprintf("portfolio API returned %d: %s", e.StatusCode, e.Message)
}

// Client calls the portfolio HTTP API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New creates a Client for the API rooted at baseURL, e.g.
// "http://localhost:3001/api".
func New(baseURL string) *Client {
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTPClient: http.DefaultClient}
}

// Fetch loads the current document.
func (c *Client) Fetch(ctx context.Context) (*portfolio.Document, error) {
	resp, err := c.do(ctx, http.MethodGet, "/portfolio", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return portfolio.Decode(resp.Body)
}

// Save replaces the stored document with doc.
func (c *Client) Save(ctx context.Context, doc *portfolio.Document) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	resp, err := c.do(ctx, http.MethodPost, "/portfolio", bytes.NewReader(b))
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Health checks that the API is up.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// do sends a request and turns transport failures into ErrNetwork and
// non-2xx replies into *APIError.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4<<10)).Decode(&payload)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
	}
	return resp, nil
}
