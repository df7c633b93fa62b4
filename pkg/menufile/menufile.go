// Package menufile parses bulk menu documents (YAML or JSON) and validates
// them against a JSON Schema before any item reaches the backend. A document
// that fails validation produces zero create calls.
package menufile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	dashboard "github.com/cafemenu/menudash/components/dashboard"
)

// Document is a bulk menu import file.
type Document struct {
	Items []Item `json:"items" yaml:"items"`
}

// Item is one dish entry in an import document.
type Item struct {
	DishName      string   `json:"dishName" yaml:"dishName"`
	Category      string   `json:"category" yaml:"category"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
	HalfPrice     *float64 `json:"halfPrice,omitempty" yaml:"halfPrice,omitempty"`
	FullPrice     *float64 `json:"fullPrice,omitempty" yaml:"fullPrice,omitempty"`
	IsChefSpecial bool     `json:"isChefSpecial,omitempty" yaml:"isChefSpecial,omitempty"`
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func documentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		categories := make([]any, len(dashboard.Categories))
		for i, c := range dashboard.Categories {
			categories[i] = c
		}
		raw := map[string]any{
			"type":     "object",
			"required": []any{"items"},
			"properties": map[string]any{
				"items": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type":     "object",
						"required": []any{"dishName", "category"},
						"properties": map[string]any{
							"dishName":      map[string]any{"type": "string", "minLength": 1},
							"category":      map[string]any{"enum": categories},
							"description":   map[string]any{"type": "string"},
							"halfPrice":     map[string]any{"type": "number", "exclusiveMinimum": 0},
							"fullPrice":     map[string]any{"type": "number", "exclusiveMinimum": 0},
							"isChefSpecial": map[string]any{"type": "boolean"},
						},
						"anyOf": []any{
							map[string]any{"required": []any{"halfPrice"}},
							map[string]any{"required": []any{"fullPrice"}},
						},
					},
				},
			},
		}
		data, err := json.Marshal(raw)
		if err != nil {
			schemaErr = fmt.Errorf("menufile: marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("menufile.json", bytes.NewReader(data)); err != nil {
			schemaErr = fmt.Errorf("menufile: load schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile("menufile.json")
	})
	return schema, schemaErr
}

// Parse decodes and validates a menu document. YAML is the canonical format;
// JSON documents parse the same way since YAML is a superset.
func Parse(data []byte) (*Document, error) {
	var intermediate any
	if err := yaml.Unmarshal(data, &intermediate); err != nil {
		return nil, fmt.Errorf("menufile: parse document: %w", err)
	}
	// Round-trip through JSON so the schema sees plain JSON types.
	normalized, err := json.Marshal(intermediate)
	if err != nil {
		return nil, fmt.Errorf("menufile: normalize document: %w", err)
	}
	var payload any
	if err := json.Unmarshal(normalized, &payload); err != nil {
		return nil, fmt.Errorf("menufile: normalize document: %w", err)
	}
	compiled, err := documentSchema()
	if err != nil {
		return nil, err
	}
	if err := compiled.Validate(payload); err != nil {
		return nil, fmt.Errorf("menufile: document failed validation: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(normalized, &doc); err != nil {
		return nil, fmt.Errorf("menufile: decode document: %w", err)
	}
	return &doc, nil
}

// Drafts converts the document into submission-ready drafts.
func (d *Document) Drafts() []dashboard.ItemDraft {
	drafts := make([]dashboard.ItemDraft, len(d.Items))
	for i, item := range d.Items {
		drafts[i] = dashboard.ItemDraft{
			DishName:      item.DishName,
			Category:      item.Category,
			Description:   item.Description,
			HalfPrice:     formatPrice(item.HalfPrice),
			FullPrice:     formatPrice(item.FullPrice),
			IsChefSpecial: item.IsChefSpecial,
		}
	}
	return drafts
}

func formatPrice(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
