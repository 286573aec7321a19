package domain

import "github.com/attendo-cloud/scangate/internal/domain/property"

// PageSummary is the projection of a Notion page returned by search and
// carried in ambiguous-match errors.
type PageSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Page is a Notion page with its full property mapping.
type Page struct {
	ID         string
	URL        string
	Properties map[string]property.Value
}

// Title derives the page title by locating the single property typed as
// title and concatenating its text runs. Empty when no title property exists.
func (p Page) Title() string {
	for _, v := range p.Properties {
		if v.Type == property.TypeTitle {
			return v.PlainText()
		}
	}
	return ""
}

// Summary projects the page onto PageSummary.
func (p Page) Summary() PageSummary {
	return PageSummary{ID: p.ID, Title: p.Title(), URL: p.URL}
}
