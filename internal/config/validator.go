package config

import (
	"fmt"
	"os"
	"strings"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of config validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

func (r *ValidationResult) addError(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// Validate validates a table file: syntax, schema, then the rules the schema
// cannot express
func Validate(path string) (*ValidationResult, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	result, err := ValidateWithSchema(path, content)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return result, nil
	}

	cfg, err := Parse(path, content)
	if err != nil {
		result.addError("syntax", fmt.Sprintf("Failed to parse config: %v", err))
		return result, nil
	}

	for _, e := range Check(cfg).Errors {
		result.addError(e.Field, e.Message)
	}
	return result, nil
}

// Check applies the semantic rules to a decoded table: unique command and
// option names, at most one value source per option, and sources that compile.
func Check(cfg *Config) *ValidationResult {
	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	if cfg.Timeout < 0 {
		result.addError("timeout", "Timeout must not be negative")
	}

	seen := make(map[string]bool, len(cfg.Commands))
	for i, cmd := range cfg.Commands {
		field := fmt.Sprintf("commands/%d", i)
		if strings.TrimSpace(cmd.Name) == "" {
			result.addError(field, "Command name is empty")
			continue
		}
		field = "commands/" + cmd.Name
		if seen[cmd.Name] {
			result.addError(field, fmt.Sprintf("Command '%s' is defined more than once", cmd.Name))
		}
		seen[cmd.Name] = true

		options := make(map[string]bool, len(cmd.Options))
		for j, opt := range cmd.Options {
			if strings.TrimSpace(opt.Name) == "" {
				result.addError(fmt.Sprintf("%s/options/%d", field, j), "Option name is empty")
				continue
			}
			optField := field + "/" + opt.Name
			if options[opt.Name] {
				result.addError(optField, fmt.Sprintf("Option '%s' is defined more than once", opt.Name))
			}
			options[opt.Name] = true

			if opt.Cache < 0 {
				result.addError(optField, "Cache duration must not be negative")
			}
			if opt.Cache > 0 && opt.HTTP == nil && opt.Exec == nil {
				result.addError(optField, "Cache only applies to http and exec sources")
			}
			if _, err := opt.source(cmd.Name, nil); err != nil {
				result.addError(optField, err.Error())
			}
		}
	}

	return result
}
