// Package yamldoc decodes YAML input files after validating them against
// a JSON Schema.
package yamldoc

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// Schema names a JSON Schema definition.
type Schema struct {
	Name       string
	Definition string // JSON text
}

// schemaCache caches compiled schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// ErrInvalidDocument is returned when a document does not match its schema.
type ErrInvalidDocument struct {
	Schema string
	Err    error
}

func (e *ErrInvalidDocument) Error() string {
	return fmt.Sprintf("%s: %v", e.Schema, e.Err)
}

func (e *ErrInvalidDocument) Unwrap() error {
	return e.Err
}

// Decode parses data as YAML, validates it against schema and decodes it
// into out.
func Decode(data []byte, schema Schema, out any) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return &ErrInvalidDocument{Schema: schema.Name, Err: fmt.Errorf("invalid YAML: %w", err)}
	}
	if raw == nil {
		return &ErrInvalidDocument{Schema: schema.Name, Err: fmt.Errorf("empty document")}
	}

	// yaml.v3 yields ints and nested maps; round-trip through JSON so the
	// validator sees plain JSON values.
	b, err := json.Marshal(raw)
	if err != nil {
		return &ErrInvalidDocument{Schema: schema.Name, Err: fmt.Errorf("convert to JSON: %w", err)}
	}
	var parsed any
	if err := json.Unmarshal(b, &parsed); err != nil {
		return &ErrInvalidDocument{Schema: schema.Name, Err: fmt.Errorf("convert to JSON: %w", err)}
	}

	compiled, err := getCompiledSchema(schema)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return &ErrInvalidDocument{Schema: schema.Name, Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return &ErrInvalidDocument{Schema: schema.Name, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(schema Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	var def any
	if err := json.Unmarshal([]byte(schema.Definition), &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
