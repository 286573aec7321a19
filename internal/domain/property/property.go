// Package property models Notion page properties: the closed set of value
// types, rendering a value to plain text, and building update payloads.
package property

import (
	"strconv"
	"strings"
)

// Type is the Notion property type discriminator.
type Type string

// The closed set of property types this gateway understands.
const (
	TypeTitle       Type = "title"
	TypeRichText    Type = "rich_text"
	TypeNumber      Type = "number"
	TypeCheckbox    Type = "checkbox"
	TypeStatus      Type = "status"
	TypeDate        Type = "date"
	TypeSelect      Type = "select"
	TypeMultiSelect Type = "multi_select"
	TypePeople      Type = "people"
	TypeEmail       Type = "email"
	TypePhoneNumber Type = "phone_number"
	TypeURL         Type = "url"
	TypeFormula     Type = "formula"
	TypeRollup      Type = "rollup"
)

// RichText is one text run of a title or rich_text property.
type RichText struct {
	PlainText string `json:"plain_text"`
	Text      *Text  `json:"text,omitempty"`
}

// Text is the writable content of a text run.
type Text struct {
	Content string `json:"content"`
}

// Option is a select, multi_select, or status choice.
type Option struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Date is a date property payload.
type Date struct {
	Start string  `json:"start"`
	End   *string `json:"end,omitempty"`
}

// Person is a people property entry.
type Person struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Formula is the computed result of a formula property.
type Formula struct {
	Type    string   `json:"type"`
	String  *string  `json:"string,omitempty"`
	Number  *float64 `json:"number,omitempty"`
	Boolean *bool    `json:"boolean,omitempty"`
	Date    *Date    `json:"date,omitempty"`
}

// Rollup is the aggregated result of a rollup property. Array elements are
// themselves property values.
type Rollup struct {
	Type   string   `json:"type"`
	Number *float64 `json:"number,omitempty"`
	Date   *Date    `json:"date,omitempty"`
	Array  []Value  `json:"array,omitempty"`
}

// Value is a tagged union over the property types. Type selects which payload
// field is meaningful; the others stay zero.
type Value struct {
	ID          string     `json:"id,omitempty"`
	Type        Type       `json:"type"`
	Title       []RichText `json:"title,omitempty"`
	RichText    []RichText `json:"rich_text,omitempty"`
	Number      *float64   `json:"number,omitempty"`
	Checkbox    *bool      `json:"checkbox,omitempty"`
	Select      *Option    `json:"select,omitempty"`
	MultiSelect []Option   `json:"multi_select,omitempty"`
	Status      *Option    `json:"status,omitempty"`
	Date        *Date      `json:"date,omitempty"`
	People      []Person   `json:"people,omitempty"`
	Email       *string    `json:"email,omitempty"`
	PhoneNumber *string    `json:"phone_number,omitempty"`
	URL         *string    `json:"url,omitempty"`
	Formula     *Formula   `json:"formula,omitempty"`
	Rollup      *Rollup    `json:"rollup,omitempty"`
}

// PlainText renders the value as a plain string. Absence renders as "";
// this never fails.
func (v Value) PlainText() string {
	switch v.Type {
	case TypeTitle:
		return joinRuns(v.Title)
	case TypeRichText:
		return joinRuns(v.RichText)
	case TypeNumber:
		if v.Number == nil {
			return ""
		}
		return strconv.FormatFloat(*v.Number, 'f', -1, 64)
	case TypeCheckbox:
		if v.Checkbox == nil {
			return ""
		}
		return strconv.FormatBool(*v.Checkbox)
	case TypeSelect:
		return optionName(v.Select)
	case TypeStatus:
		return optionName(v.Status)
	case TypeMultiSelect:
		names := make([]string, len(v.MultiSelect))
		for i, o := range v.MultiSelect {
			names[i] = o.Name
		}
		return strings.Join(names, ", ")
	case TypePeople:
		names := make([]string, 0, len(v.People))
		for _, p := range v.People {
			if p.Name != "" {
				names = append(names, p.Name)
			}
		}
		return strings.Join(names, ", ")
	case TypeDate:
		return dateText(v.Date)
	case TypeEmail:
		return deref(v.Email)
	case TypePhoneNumber:
		return deref(v.PhoneNumber)
	case TypeURL:
		return deref(v.URL)
	case TypeFormula:
		return formulaText(v.Formula)
	case TypeRollup:
		return rollupText(v.Rollup)
	default:
		return ""
	}
}

func joinRuns(runs []RichText) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.PlainText)
	}
	return b.String()
}

func optionName(o *Option) string {
	if o == nil {
		return ""
	}
	return o.Name
}

func dateText(d *Date) string {
	if d == nil {
		return ""
	}
	if d.End != nil && *d.End != "" {
		return d.Start + " / " + *d.End
	}
	return d.Start
}

func formulaText(f *Formula) string {
	if f == nil {
		return ""
	}
	switch f.Type {
	case "string":
		return deref(f.String)
	case "number":
		if f.Number == nil {
			return ""
		}
		return strconv.FormatFloat(*f.Number, 'f', -1, 64)
	case "boolean":
		if f.Boolean == nil {
			return ""
		}
		return strconv.FormatBool(*f.Boolean)
	case "date":
		return dateText(f.Date)
	default:
		return ""
	}
}

// rollupText renders a rollup result. Array rollups recurse one level into
// their element property values.
func rollupText(r *Rollup) string {
	if r == nil {
		return ""
	}
	switch r.Type {
	case "number":
		if r.Number == nil {
			return ""
		}
		return strconv.FormatFloat(*r.Number, 'f', -1, 64)
	case "date":
		return dateText(r.Date)
	case "array":
		parts := make([]string, 0, len(r.Array))
		for _, el := range r.Array {
			if s := el.PlainText(); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
