// Package scanclient is the typed client for the scangate HTTP API, plus the
// scanner-side pieces: detection normalization and duplicate debounce.
package scanclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// PageSummary mirrors the gateway's search result projection.
type PageSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ScanResult is the response of a successful scan.
type ScanResult struct {
	OK        bool   `json:"ok"`
	ScannedID string `json:"scannedId"`
	PageID    string `json:"pageId"`
	Title     string `json:"title"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`
	Doc       string `json:"doc"`
}

// PatchResult is the response of a property patch.
type PatchResult struct {
	OK           bool   `json:"ok"`
	PageID       string `json:"pageId"`
	PropertyName string `json:"propertyName"`
	Type         string `json:"type"`
}

// APIError is a non-2xx gateway response. Matches is populated on 409
// ambiguous-match conflicts.
type APIError struct {
	Status  int
	Message string
	Matches []PageSummary
}

func (e *APIError) Error() string {
	return fmt.Sprintf("scangate: status=%d message=%s", e.Status, e.Message)
}

// Options configures the client.
type Options struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// Client talks to a scangate instance. Failed calls are not retried; the
// operator re-scans instead.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a gateway client.
func New(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("scanclient: base URL is required")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(opts.APIKey),
		httpClient: httpClient,
	}, nil
}

// Health checks gateway liveness.
func (c *Client) Health(ctx context.Context) error {
	var resp struct {
		OK bool `json:"ok"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &resp); err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("scanclient: gateway reported not ok")
	}
	return nil
}

// Search runs a page search.
func (c *Client) Search(ctx context.Context, query string, pageSize int) ([]PageSummary, error) {
	body := map[string]any{"query": query}
	if pageSize > 0 {
		body["page_size"] = pageSize
	}
	var resp struct {
		Results []PageSummary `json:"results"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/notion/search", body, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Scan submits one scanned identifier for attendance marking.
func (c *Client) Scan(ctx context.Context, id string) (ScanResult, error) {
	var res ScanResult
	err := c.do(ctx, http.MethodPost, "/api/notion/scan", map[string]any{"id": id}, &res)
	return res, err
}

// PatchProperty sets one property on a page.
func (c *Client) PatchProperty(ctx context.Context, pageID, propertyName string, value any) (PatchResult, error) {
	var res PatchResult
	path := "/api/notion/pages/" + url.PathEscape(pageID) + "/property"
	body := map[string]any{"propertyName": propertyName, "value": value}
	err := c.do(ctx, http.MethodPatch, path, body, &res)
	return res, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("scanclient: marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("scanclient: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("scanclient: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("scanclient: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(resp.StatusCode, respBody)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("scanclient: decode response: %w", err)
	}
	return nil
}

func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status, Message: strings.TrimSpace(string(body))}
	var parsed struct {
		Error   string        `json:"error"`
		Matches []PageSummary `json:"matches"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Error != "" {
		apiErr.Message = parsed.Error
		apiErr.Matches = parsed.Matches
	}
	return apiErr
}
