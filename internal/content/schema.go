package content

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schema is a named JSON Schema definition for one content file.
type schema struct {
	Name       string
	Definition map[string]any
}

var compiledSchemas sync.Map // map[string]*jsonschema.Schema

func str() map[string]any { return map[string]any{"type": "string"} }

func nonEmpty() map[string]any { return map[string]any{"type": "string", "minLength": 1} }

func strList() map[string]any {
	return map[string]any{"type": "array", "items": nonEmpty()}
}

func object(required []any, props map[string]any) map[string]any {
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

func arrayOf(item map[string]any, minItems int) map[string]any {
	return map[string]any{"type": "array", "items": item, "minItems": minItems}
}

var formatProp = map[string]any{
	"type":    "string",
	"pattern": `^v[0-9]+\.[0-9]+\.[0-9]+$`,
}

var playlistSchema = &schema{
	Name: "playlist",
	Definition: object([]any{"format", "tracks"}, map[string]any{
		"format": formatProp,
		"tracks": arrayOf(object([]any{"id", "module", "title", "source"}, map[string]any{
			"id":               map[string]any{"type": "integer", "minimum": 1},
			"module":           nonEmpty(),
			"title":            nonEmpty(),
			"source":           nonEmpty(),
			"duration":         map[string]any{"type": "string", "pattern": `^[0-9]+:[0-5][0-9]$`},
			"duration_seconds": map[string]any{"type": "integer", "minimum": 0},
			"color":            map[string]any{"type": "string", "pattern": `^#[0-9A-Fa-f]{6}$`},
			"cache_sensitive":  map[string]any{"type": "boolean"},
		}), 1),
	}),
}

var exercisesSchema = &schema{
	Name: "exercises",
	Definition: object([]any{"format", "exercises"}, map[string]any{
		"format": formatProp,
		"exercises": arrayOf(object([]any{"id", "title", "mode", "zones", "items"}, map[string]any{
			"id":           nonEmpty(),
			"title":        nonEmpty(),
			"summary":      str(),
			"instructions": str(),
			"mode":         map[string]any{"type": "string", "enum": []any{"ordering", "categorize"}},
			"target":       str(),
			"order":        strList(),
			"success":      str(),
			"zones": arrayOf(object([]any{"id", "title"}, map[string]any{
				"id":          nonEmpty(),
				"title":       nonEmpty(),
				"description": str(),
				"accept":      strList(),
			}), 1),
			"items": arrayOf(object([]any{"id", "text"}, map[string]any{
				"id":     nonEmpty(),
				"text":   nonEmpty(),
				"detail": str(),
				"meta":   map[string]any{"type": "object", "additionalProperties": str()},
			}), 1),
		}), 1),
	}),
}

var decisionTreeSchema = &schema{
	Name: "decision-tree",
	Definition: object([]any{"format", "start", "nodes"}, map[string]any{
		"format":  formatProp,
		"title":   str(),
		"summary": str(),
		"start":   nonEmpty(),
		"nodes": arrayOf(object([]any{"id", "question", "options"}, map[string]any{
			"id":          nonEmpty(),
			"title":       str(),
			"description": str(),
			"question":    nonEmpty(),
			"options": arrayOf(object([]any{"text", "response", "next"}, map[string]any{
				"text":     nonEmpty(),
				"response": nonEmpty(),
				"next":     nonEmpty(),
				"correct":  map[string]any{"type": "boolean"},
			}), 2),
		}), 1),
	}),
}

var glossarySchema = &schema{
	Name: "glossary",
	Definition: object([]any{"format", "terms"}, map[string]any{
		"format": formatProp,
		"terms": arrayOf(object([]any{"term", "definition", "category"}, map[string]any{
			"term":       nonEmpty(),
			"definition": nonEmpty(),
			"category":   nonEmpty(),
		}), 0),
	}),
}

var flashcardsSchema = &schema{
	Name: "flashcards",
	Definition: object([]any{"format", "cards"}, map[string]any{
		"format": formatProp,
		"cards": arrayOf(object([]any{"id", "category", "difficulty", "front", "back"}, map[string]any{
			"id":         nonEmpty(),
			"category":   map[string]any{"type": "string", "enum": []any{"compliance", "script", "process", "legal", "objection"}},
			"difficulty": map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
			"front":      nonEmpty(),
			"back":       nonEmpty(),
		}), 0),
	}),
}

var scriptsSchema = &schema{
	Name: "scripts",
	Definition: object([]any{"format", "modules"}, map[string]any{
		"format": formatProp,
		"compliance": arrayOf(object([]any{"id", "phrase"}, map[string]any{
			"id":      nonEmpty(),
			"phrase":  nonEmpty(),
			"context": str(),
			"legal":   str(),
		}), 0),
		"modules": arrayOf(object([]any{"key", "title", "subsections"}, map[string]any{
			"key":   nonEmpty(),
			"track": str(),
			"title": nonEmpty(),
			"color": str(),
			"subsections": arrayOf(object([]any{"id", "title", "blocks"}, map[string]any{
				"id":    nonEmpty(),
				"title": nonEmpty(),
				"blocks": arrayOf(map[string]any{
					"type": "object",
					"properties": map[string]any{
						"kind": map[string]any{
							"type": "string",
							"enum": []any{"verbatim", "compliance", "analysis", "transition", "branching", "regular"},
						},
						"text":    str(),
						"warning": str(),
						"branches": arrayOf(object([]any{"condition", "response"}, map[string]any{
							"condition": nonEmpty(),
							"response":  nonEmpty(),
							"next":      str(),
						}), 1),
					},
					"required":             []any{"kind", "text"},
					"additionalProperties": false,
					// Branching blocks carry their branches.
					"if":   map[string]any{"properties": map[string]any{"kind": map[string]any{"const": "branching"}}},
					"then": map[string]any{"required": []any{"branches"}},
				}, 1),
			}), 1),
		}), 1),
	}),
}

// validate checks doc, a JSON-shaped value, against s.
func validate(s *schema, doc any) error {
	compiled, err := compiledSchema(s)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", s.Name, err)
	}
	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compiledSchema(s *schema) (*jsonschema.Schema, error) {
	if cached, ok := compiledSchemas.Load(s.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	defBytes, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", s.Name)
	if err := c.AddResource(url, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	compiledSchemas.Store(s.Name, compiled)
	return compiled, nil
}
