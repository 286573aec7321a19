package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/attendo-cloud/scangate/internal/domain/property"
)

// propertyItemDTO is one element of a paginated property response. Unlike a
// page's inline value, list items carry a single text run or person per item.
type propertyItemDTO struct {
	Object      string             `json:"object"`
	Type        property.Type      `json:"type"`
	Title       *property.RichText `json:"title"`
	RichText    *property.RichText `json:"rich_text"`
	Number      *float64           `json:"number"`
	Checkbox    *bool              `json:"checkbox"`
	Select      *property.Option   `json:"select"`
	MultiSelect []property.Option  `json:"multi_select"`
	Status      *property.Option   `json:"status"`
	Date        *property.Date     `json:"date"`
	People      *property.Person   `json:"people"`
	Email       *string            `json:"email"`
	PhoneNumber *string            `json:"phone_number"`
	URL         *string            `json:"url"`
	Formula     *property.Formula  `json:"formula"`
	Rollup      *property.Rollup   `json:"rollup"`
}

// propertyListDTO is the paginated envelope returned for list-valued
// properties (title, rich_text, people, rollup).
type propertyListDTO struct {
	Object     string            `json:"object"`
	Results    []propertyItemDTO `json:"results"`
	HasMore    bool              `json:"has_more"`
	NextCursor *string           `json:"next_cursor"`
	// For rollups the aggregate lives on the envelope, not the items.
	PropertyItem *struct {
		Type   property.Type    `json:"type"`
		Rollup *property.Rollup `json:"rollup"`
	} `json:"property_item"`
}

// RetrieveProperty fetches a single property's full value, following
// pagination. Used when a page's inline representation was elided or
// truncated by the API.
func (c *Client) RetrieveProperty(ctx context.Context, pageID, propertyID string) (property.Value, error) {
	basePath := "/v1/pages/" + url.PathEscape(pageID) + "/properties/" + url.PathEscape(propertyID)

	var items []propertyItemDTO
	var rollup *property.Rollup
	cursor := ""
	for {
		path := basePath
		if cursor != "" {
			path += "?start_cursor=" + url.QueryEscape(cursor)
		}

		var raw json.RawMessage
		if err := c.do(ctx, "retrieve_property", http.MethodGet, path, nil, &raw); err != nil {
			return property.Value{}, err
		}

		var envelope struct {
			Object string `json:"object"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return property.Value{}, fmt.Errorf("decode property response: %w", err)
		}

		// Simple property types come back as a bare item, not a list.
		if envelope.Object != "list" {
			var item propertyItemDTO
			if err := json.Unmarshal(raw, &item); err != nil {
				return property.Value{}, fmt.Errorf("decode property item: %w", err)
			}
			return assembleProperty([]propertyItemDTO{item}, nil), nil
		}

		var list propertyListDTO
		if err := json.Unmarshal(raw, &list); err != nil {
			return property.Value{}, fmt.Errorf("decode property list: %w", err)
		}
		items = append(items, list.Results...)
		if list.PropertyItem != nil && list.PropertyItem.Rollup != nil {
			rollup = list.PropertyItem.Rollup
		}
		if !list.HasMore || list.NextCursor == nil || *list.NextCursor == "" {
			break
		}
		cursor = *list.NextCursor
	}

	return assembleProperty(items, rollup), nil
}

// assembleProperty folds paginated items back into one property value.
func assembleProperty(items []propertyItemDTO, rollup *property.Rollup) property.Value {
	if rollup != nil {
		v := property.Value{Type: property.TypeRollup, Rollup: rollup}
		// Array rollups deliver their elements as list items.
		if rollup.Type == "array" && len(rollup.Array) == 0 {
			for _, item := range items {
				v.Rollup.Array = append(v.Rollup.Array, item.toValue())
			}
		}
		return v
	}
	if len(items) == 0 {
		return property.Value{}
	}

	first := items[0]
	switch first.Type {
	case property.TypeTitle:
		v := property.Value{Type: property.TypeTitle}
		for _, item := range items {
			if item.Title != nil {
				v.Title = append(v.Title, *item.Title)
			}
		}
		return v
	case property.TypeRichText:
		v := property.Value{Type: property.TypeRichText}
		for _, item := range items {
			if item.RichText != nil {
				v.RichText = append(v.RichText, *item.RichText)
			}
		}
		return v
	case property.TypePeople:
		v := property.Value{Type: property.TypePeople}
		for _, item := range items {
			if item.People != nil {
				v.People = append(v.People, *item.People)
			}
		}
		return v
	default:
		return first.toValue()
	}
}

// toValue converts a single item into a property value for the non-paginated
// types and for rollup array elements.
func (d propertyItemDTO) toValue() property.Value {
	v := property.Value{
		Type:        d.Type,
		Number:      d.Number,
		Checkbox:    d.Checkbox,
		Select:      d.Select,
		MultiSelect: d.MultiSelect,
		Status:      d.Status,
		Date:        d.Date,
		Email:       d.Email,
		PhoneNumber: d.PhoneNumber,
		URL:         d.URL,
		Formula:     d.Formula,
		Rollup:      d.Rollup,
	}
	if d.Title != nil {
		v.Title = []property.RichText{*d.Title}
	}
	if d.RichText != nil {
		v.RichText = []property.RichText{*d.RichText}
	}
	if d.People != nil {
		v.People = []property.Person{*d.People}
	}
	return v
}
