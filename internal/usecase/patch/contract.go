package patch

import (
	"context"

	"github.com/attendo-cloud/scangate/internal/domain"
)

// Gateway is the upstream contract for property updates.
type Gateway interface {
	RetrievePage(ctx context.Context, pageID string) (domain.Page, error)
	UpdateProperties(ctx context.Context, pageID string, props map[string]any) (domain.Page, error)
}
