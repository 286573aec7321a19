package chi

import (
	"bytes"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// requestSchema validates a request body against an embedded JSON Schema
// before any handler logic runs.
type requestSchema struct {
	name     string
	compiled *jsonschema.Schema
}

func mustSchema(name, source string) *requestSchema {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(source)))
	if err != nil {
		panic(fmt.Sprintf("parse schema %s: %v", name, err))
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, doc); err != nil {
		panic(fmt.Sprintf("add schema %s: %v", name, err))
	}
	return &requestSchema{name: name, compiled: c.MustCompile(name)}
}

func (s *requestSchema) validate(body []byte) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("request body is required")
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := s.compiled.Validate(doc); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

var searchSchema = mustSchema("search.json", `{
	"type": "object",
	"required": ["query"],
	"properties": {
		"query": {"type": "string", "minLength": 1},
		"page_size": {"type": "integer", "minimum": 1, "maximum": 100}
	}
}`)

var scanSchema = mustSchema("scan.json", `{
	"type": "object",
	"required": ["id"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"debug": {"type": "boolean"}
	}
}`)

var patchSchema = mustSchema("patch.json", `{
	"type": "object",
	"required": ["propertyName", "value"],
	"properties": {
		"propertyName": {"type": "string", "minLength": 1}
	}
}`)
