// Package notion is the gateway to the Notion REST API: search, page
// retrieval, per-property retrieval, and partial property updates.
package notion

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

	"go.uber.org/zap"

	"github.com/attendo-cloud/scangate/internal/domain"
	"github.com/attendo-cloud/scangate/internal/metrics"
)

const (
	defaultBaseURL    = "https://api.notion.com"
	defaultAPIVersion = "2022-06-28"
)

// Config holds the Notion connection settings.
type Config struct {
	Token      string
	BaseURL    string
	APIVersion string
	Timeout    time.Duration
	Logger     *zap.Logger
}

// Client issues authenticated calls to the Notion API. Failures are terminal:
// nothing is retried, the caller decides whether to scan again.
type Client struct {
	baseURL    string
	token      string
	apiVersion string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Notion API client.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	apiVersion := strings.TrimSpace(cfg.APIVersion)
	if apiVersion == "" {
		apiVersion = defaultAPIVersion
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    baseURL,
		token:      cfg.Token,
		apiVersion: apiVersion,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Search runs a full-text search restricted to page objects and projects the
// results onto summaries.
func (c *Client) Search(ctx context.Context, query string, pageSize int) ([]domain.PageSummary, error) {
	body := map[string]any{
		"query":     query,
		"page_size": pageSize,
		"filter":    map[string]any{"property": "object", "value": "page"},
	}
	var resp struct {
		Results []pageDTO `json:"results"`
	}
	if err := c.do(ctx, "search", http.MethodPost, "/v1/search", body, &resp); err != nil {
		return nil, err
	}
	summaries := make([]domain.PageSummary, 0, len(resp.Results))
	for _, p := range resp.Results {
		if p.Object != "page" {
			continue
		}
		summaries = append(summaries, p.toDomain().Summary())
	}
	return summaries, nil
}

// RetrievePage fetches the full property mapping of a page.
func (c *Client) RetrievePage(ctx context.Context, pageID string) (domain.Page, error) {
	var dto pageDTO
	path := "/v1/pages/" + url.PathEscape(pageID)
	if err := c.do(ctx, "retrieve_page", http.MethodGet, path, nil, &dto); err != nil {
		return domain.Page{}, err
	}
	return dto.toDomain(), nil
}

// UpdateProperties applies a partial update: only the named properties are
// touched. Returns the updated page as reported by the API; derived fields in
// that body may not be recomputed yet.
func (c *Client) UpdateProperties(ctx context.Context, pageID string, props map[string]any) (domain.Page, error) {
	var dto pageDTO
	path := "/v1/pages/" + url.PathEscape(pageID)
	body := map[string]any{"properties": props}
	if err := c.do(ctx, "update_page", http.MethodPatch, path, body, &dto); err != nil {
		return domain.Page{}, err
	}
	return dto.toDomain(), nil
}

// do performs one API call, unwrapping non-2xx responses into UpstreamError.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", op, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.apiVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.NotionRequestsTotal.WithLabelValues(op, "transport_error").Inc()
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.NotionRequestsTotal.WithLabelValues(op, "transport_error").Inc()
		return fmt.Errorf("read %s response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.NotionRequestsTotal.WithLabelValues(op, "upstream_error").Inc()
		upErr := parseAPIError(resp.StatusCode, respBody)
		c.logger.Warn("notion API error",
			zap.String("operation", op),
			zap.Int("status", resp.StatusCode),
			zap.Error(upErr),
		)
		return upErr
	}

	metrics.NotionRequestsTotal.WithLabelValues(op, "success").Inc()
	metrics.NotionRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}

// parseAPIError extracts code and message from a Notion error body. The raw
// body stands in as the message when it does not parse.
func parseAPIError(status int, body []byte) *domain.UpstreamError {
	upErr := &domain.UpstreamError{
		Status:  status,
		Message: strings.TrimSpace(string(body)),
	}
	var parsed struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &parsed) == nil {
		upErr.Code = parsed.Code
		if strings.TrimSpace(parsed.Message) != "" {
			upErr.Message = parsed.Message
		}
	}
	return upErr
}
