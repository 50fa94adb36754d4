package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON string

// GetSchemaJSON returns the JSON Schema for mycli command tables
func GetSchemaJSON() string {
	return schemaJSON
}

// decodeDocument converts a table file into a JSON-compatible value
func decodeDocument(path string, content []byte) (interface{}, error) {
	var data interface{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("invalid YAML syntax: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("invalid JSON syntax: %w", err)
		}
	case ".toml":
		m, err := toml.Parser().Unmarshal(content)
		if err != nil {
			return nil, fmt.Errorf("invalid TOML syntax: %w", err)
		}
		data = m
	default:
		return nil, errUnsupportedFormat
	}

	// An empty YAML document decodes to nil
	if data == nil {
		data = map[string]interface{}{}
	}
	return data, nil
}

var errUnsupportedFormat = fmt.Errorf("unsupported file format")

// ValidateWithSchema validates a table file against the JSON Schema
func ValidateWithSchema(path string, content []byte) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	data, err := decodeDocument(path, content)
	if err == errUnsupportedFormat {
		return nil, err
	}
	if err != nil {
		result.addError("syntax", err.Error())
		return result, nil
	}

	schemaLoader := gojsonschema.NewStringLoader(GetSchemaJSON())
	documentLoader := gojsonschema.NewGoLoader(data)

	validationResult, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	if !validationResult.Valid() {
		for _, desc := range validationResult.Errors() {
			result.addError(desc.Field(), desc.Description())
		}
	}

	return result, nil
}
