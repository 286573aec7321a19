package search

import (
	"context"

	"github.com/attendo-cloud/scangate/internal/domain"
)

// Gateway is the upstream search contract.
type Gateway interface {
	Search(ctx context.Context, query string, pageSize int) ([]domain.PageSummary, error)
}
