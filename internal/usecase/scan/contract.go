package scan

import (
	"context"

	"github.com/attendo-cloud/scangate/internal/domain"
	"github.com/attendo-cloud/scangate/internal/domain/property"
)

// Gateway is the upstream contract the scan flow needs.
type Gateway interface {
	Search(ctx context.Context, query string, pageSize int) ([]domain.PageSummary, error)
	RetrievePage(ctx context.Context, pageID string) (domain.Page, error)
	RetrieveProperty(ctx context.Context, pageID, propertyID string) (property.Value, error)
	UpdateProperties(ctx context.Context, pageID string, props map[string]any) (domain.Page, error)
}
