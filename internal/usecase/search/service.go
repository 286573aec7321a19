// Package search exposes page search against the Notion workspace.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/attendo-cloud/scangate/internal/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service handles page search requests.
type Service struct {
	gw Gateway
}

// New creates a search service.
func New(gw Gateway) *Service {
	return &Service{gw: gw}
}

// Search runs a page search. An empty query is a validation error; page size
// defaults to 20 and is clamped to 100.
func (s *Service) Search(ctx context.Context, query string, pageSize int) ([]domain.PageSummary, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrValidation)
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	results, err := s.gw.Search(ctx, query, pageSize)
	if err != nil {
		return nil, fmt.Errorf("search pages: %w", err)
	}
	return results, nil
}
