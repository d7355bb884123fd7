package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema describes the JSON shape a response body must have. Schemas only
// constrain types: any field may be absent or null, and callers decide what
// absence means.
type Schema struct {
	Name       string
	Definition map[string]any
}

func nullable(typ string) map[string]any {
	return map[string]any{"type": []any{typ, "null"}}
}

func arrayOf(item map[string]any) map[string]any {
	return map[string]any{"type": []any{"array", "null"}, "items": item}
}

func object(props map[string]any) map[string]any {
	return map[string]any{"type": "object", "properties": props}
}

var (
	settingsSchema = &Schema{
		Name: "settings",
		Definition: object(map[string]any{
			"theme":             nullable("string"),
			"practice_language": nullable("string"),
			"ui_language":       nullable("string"),
			"model":             nullable("string"),
			"score":             nullable("integer"),
		}),
	}

	modelsSchema = &Schema{
		Name: "models",
		Definition: object(map[string]any{
			"models": arrayOf(object(map[string]any{
				"name":           map[string]any{"type": "string"},
				"parameter_size": nullable("string"),
			})),
		}),
	}

	scenariosSchema = &Schema{
		Name: "scenarios",
		Definition: object(map[string]any{
			"scenarios": arrayOf(object(map[string]any{
				"id":          map[string]any{"type": "string"},
				"setting":     nullable("string"),
				"goal":        nullable("string"),
				"description": nullable("string"),
				"clipart":     nullable("string"),
			})),
		}),
	}

	turnSchema = &Schema{
		Name: "chat-turn",
		Definition: object(map[string]any{
			"bot_message": nullable("string"),
			"status":      nullable("string"),
			"summary":     nullable("string"),
		}),
	}

	hintSchema = &Schema{
		Name: "chat-hint",
		Definition: object(map[string]any{
			"hint": nullable("string"),
		}),
	}

	historySchema = &Schema{
		Name: "history",
		Definition: object(map[string]any{
			"history": arrayOf(object(map[string]any{
				"id":                map[string]any{"type": "integer"},
				"scenario_id":       nullable("string"),
				"timestamp":         nullable("string"),
				"practice_language": nullable("string"),
				"model":             nullable("string"),
			})),
		}),
	}

	conversationSchema = &Schema{
		Name: "conversation",
		Definition: object(map[string]any{
			"conversation": arrayOf(object(map[string]any{
				"speaker": map[string]any{"type": "string"},
				"content": nullable("string"),
			})),
		}),
	}

	summarySchema = &Schema{
		Name: "summary",
		Definition: object(map[string]any{
			"summary": nullable("string"),
		}),
	}
)

// compiled holds one compiled JSON schema per endpoint schema name.
var compiled sync.Map // map[string]*jsonschema.Schema

// validateResponse checks an API response body against the schema of the
// endpoint that returned it, before the body is decoded into Go types.
// A body that is not JSON or does not match comes back as
// *ErrInvalidResponse carrying the raw content for the log.
func validateResponse(op string, schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}
	invalid := func(err error) error {
		return &ErrInvalidResponse{Op: op, Content: raw, Err: err}
	}

	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return invalid(fmt.Errorf("%s body is not JSON: %w", schema.Name, err))
	}
	sch, err := compiledSchema(schema)
	if err != nil {
		return invalid(err)
	}
	if err := sch.Validate(body); err != nil {
		return invalid(fmt.Errorf("%s body does not match: %w", schema.Name, err))
	}
	return nil
}

// compiledSchema compiles a schema once and reuses it afterwards.
func compiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if sch, ok := compiled.Load(schema.Name); ok {
		return sch.(*jsonschema.Schema), nil
	}

	// AddResource takes decoded JSON, so round-trip the Go literal.
	def, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("encode %s schema: %w", schema.Name, err)
	}
	var doc any
	if err := json.Unmarshal(def, &doc); err != nil {
		return nil, fmt.Errorf("decode %s schema: %w", schema.Name, err)
	}

	url := "lingoflow://schemas/" + schema.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("load %s schema: %w", schema.Name, err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", schema.Name, err)
	}
	compiled.Store(schema.Name, sch)
	return sch, nil
}
