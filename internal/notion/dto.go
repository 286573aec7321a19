package notion

import (
	"github.com/attendo-cloud/scangate/internal/domain"
	"github.com/attendo-cloud/scangate/internal/domain/property"
)

// pageDTO is the wire shape of a Notion page object.
type pageDTO struct {
	Object     string                    `json:"object"`
	ID         string                    `json:"id"`
	URL        string                    `json:"url"`
	Properties map[string]property.Value `json:"properties"`
}

func (p pageDTO) toDomain() domain.Page {
	return domain.Page{
		ID:         p.ID,
		URL:        p.URL,
		Properties: p.Properties,
	}
}
