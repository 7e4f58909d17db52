package contract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/qri-io/jsonschema"

	"github.com/templui/focusflow/internal/model"
)

// Schema is a compiled JSON Schema describing one response body.
type Schema struct {
	name string
	rs   *jsonschema.Schema
}

// SchemaError lists every keyword violation found in a body.
type SchemaError struct {
	Schema string
	Errors []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("response does not match %s schema: %s", e.Schema, strings.Join(e.Errors, "; "))
}

func mustSchema(name string, doc map[string]any) *Schema {
	data, err := json.Marshal(doc)
	if err != nil {
		panic(fmt.Sprintf("contract: encode %s schema: %v", name, err))
	}

	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(data, rs); err != nil {
		panic(fmt.Sprintf("contract: compile %s schema: %v", name, err))
	}

	return &Schema{name: name, rs: rs}
}

func (s *Schema) Name() string {
	return s.name
}

// Validate checks body against the schema.
func (s *Schema) Validate(ctx context.Context, body []byte) error {
	verrs, err := s.rs.ValidateBytes(ctx, body)
	if err != nil {
		return fmt.Errorf("validate %s: %w", s.name, err)
	}
	if len(verrs) == 0 {
		return nil
	}

	msgs := make([]string, 0, len(verrs))
	for _, ke := range verrs {
		path := ke.PropertyPath
		if path == "" {
			path = "/"
		}
		msgs = append(msgs, path+": "+ke.Message)
	}
	return &SchemaError{Schema: s.name, Errors: msgs}
}

func object(required []string, props map[string]any) map[string]any {
	return map[string]any{
		"type":       "object",
		"required":   required,
		"properties": props,
	}
}

func arrayOf(items map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": items}
}

func enum(values []string) map[string]any {
	return map[string]any{"type": "string", "enum": values}
}

func nullable(typ string) map[string]any {
	return map[string]any{"type": []string{typ, "null"}}
}

var (
	str       = map[string]any{"type": "string"}
	integer   = map[string]any{"type": "integer"}
	boolean   = map[string]any{"type": "boolean"}
	timestamp = map[string]any{"type": "string", "format": "date-time"}
)

var goalDoc = object(
	[]string{"id", "userId", "title", "category", "priority", "isCompleted", "createdAt"},
	map[string]any{
		"id":          integer,
		"userId":      str,
		"title":       str,
		"description": nullable("string"),
		"category":    enum(model.GoalCategories),
		"priority":    enum(model.GoalPriorities),
		"dueDate":     nullable("string"),
		"isCompleted": boolean,
		"createdAt":   timestamp,
	},
)

var focusProps = map[string]any{
	"id":            integer,
	"userId":        str,
	"focusDate":     timestamp,
	"topPriorityId": nullable("integer"),
	"mood": map[string]any{
		"anyOf": []any{map[string]any{"type": "null"}, enum(model.Moods)},
	},
	"energyLevel": map[string]any{
		"type":    []string{"integer", "null"},
		"minimum": model.EnergyLevelMin,
		"maximum": model.EnergyLevelMax,
	},
	"notes": nullable("string"),
}

var focusRequired = []string{"id", "userId", "focusDate"}

var resourceProps = map[string]any{
	"id":        integer,
	"title":     str,
	"content":   str,
	"type":      enum(model.ResourceTypes),
	"category":  enum(model.ResourceCategories),
	"tags":      arrayOf(str),
	"createdAt": timestamp,
	"html":      str,
}

var resourceRequired = []string{"id", "title", "content", "type", "category", "tags", "createdAt"}

var userDoc = object(
	[]string{"id", "email", "createdAt"},
	map[string]any{
		"id":        str,
		"email":     str,
		"firstName": nullable("string"),
		"lastName":  nullable("string"),
		"createdAt": timestamp,
		"updatedAt": timestamp,
	},
)

// Response bodies shared by the route registry.
var (
	ErrorBody = mustSchema("error", object([]string{"message"}, map[string]any{
		"message": str,
		"field":   str,
	}))

	GoalBody     = mustSchema("goal", goalDoc)
	GoalListBody = mustSchema("goal list", arrayOf(goalDoc))
	FocusBody    = mustSchema("daily focus", object(focusRequired, focusProps))
	FocusOrNull  = mustSchema("daily focus or null", map[string]any{
		"type":       []string{"object", "null"},
		"required":   focusRequired,
		"properties": focusProps,
	})
	ResourceBody = mustSchema("resource", object(append(resourceRequired, "html"), resourceProps))
	ResourceList = mustSchema("resource list", arrayOf(object(resourceRequired, resourceProps)))
	UserBody     = mustSchema("user", userDoc)
	SessionBody  = mustSchema("session", object([]string{"user", "token"}, map[string]any{"user": userDoc, "token": str}))
	HealthBody   = mustSchema("health", object([]string{"status"}, map[string]any{"status": str}))
)
