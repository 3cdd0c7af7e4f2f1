package safejson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Schema is a compiled JSON Schema, draft-07 by default, ready to
// validate documents. Compile once and share; validation is
// side-effect free.
type Schema struct {
	compiled *jsonschema.Schema
}

// CompileSchema compiles a schema given as a decoded JSON object.
//
//	schema, err := safejson.CompileSchema(map[string]any{
//		"type": "object",
//		"properties": map[string]any{
//			"name": map[string]any{"type": "string"},
//			"age":  map[string]any{"type": "number"},
//		},
//		"required": []any{"name"},
//	})
func CompileSchema(doc map[string]any) (*Schema, error) {
	raw, err := sonic.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	return CompileSchemaBytes(raw)
}

// CompileSchemaBytes compiles a schema from raw JSON.
func CompileSchemaBytes(raw []byte) (*Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource("schema.json", bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return &Schema{compiled: compiled}, nil
}

// MustCompileSchema is CompileSchema for schemas known to be valid;
// it panics on error.
func MustCompileSchema(doc map[string]any) *Schema {
	s, err := CompileSchema(doc)
	if err != nil {
		panic(err)
	}
	return s
}

// LoadSchemaFile reads and compiles a schema file. ".yaml" and ".yml"
// files are parsed as YAML, everything else as JSON.
func LoadSchemaFile(path string) (*Schema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc map[string]any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parse schema file: %w", err)
		}
		return CompileSchema(doc)
	default:
		return CompileSchemaBytes(raw)
	}
}

// Validate checks doc against the schema. On violation the error
// carries the validator's own description of the failed constraint.
func (s *Schema) Validate(doc *Document) error {
	if s == nil {
		return nil
	}
	plain, err := documentValue(doc)
	if err != nil {
		return err
	}
	if err := s.compiled.Validate(plain); err != nil {
		return coded(CodeSchemaViolation, fmt.Errorf("schema validation error: %v", err))
	}
	return nil
}

// documentValue converts doc to the plain map/slice/scalar shape the
// validator operates on.
func documentValue(doc *Document) (any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var plain any
	if err := sonic.Unmarshal(raw, &plain); err != nil {
		return nil, err
	}
	return plain, nil
}
