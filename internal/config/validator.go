package config

import (
	"fmt"
	"os"
	"strings"
)

// ConsoleSender is the name of the sender that always exists
const ConsoleSender = "console"

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

func (r *ValidationResult) fail(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// ValidateFile checks a config file against the JSON Schema and, when that
// passes, against the rules the schema cannot express
func ValidateFile(path string) (*ValidationResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	result, err := ValidateWithSchema(path, content)
	if err != nil || !result.Valid {
		return result, err
	}

	cfg, err := New().Load(path)
	if err != nil {
		result.fail("syntax", fmt.Sprintf("Failed to parse config: %v", err))
		return result, nil
	}
	return Validate(cfg), nil
}

// Validate checks the rules of a loaded config the schema cannot express
func Validate(cfg *Config) *ValidationResult {
	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	if _, ok := cfg.Senders[ConsoleSender]; ok {
		result.fail("senders/"+ConsoleSender, "The console sender is built in and cannot be redefined")
	}

	for _, name := range cfg.SortedCommandNames() {
		cmd := cfg.Commands[name]
		field := "commands/" + name

		if strings.ContainsAny(name, " \t") {
			result.fail(field, "Command name contains whitespace")
		}
		if cmd.Sender != "" && cmd.Sender != SenderAny && cmd.Sender != SenderPlayer {
			result.fail(field+"/sender", fmt.Sprintf("Unknown sender validator '%s'", cmd.Sender))
		}

		seen := make(map[string]bool, len(cmd.Params))
		for i, p := range cmd.Params {
			if seen[p.Name] {
				result.fail(fmt.Sprintf("%s/params/%d", field, i), fmt.Sprintf("Duplicate parameter name '%s'", p.Name))
			}
			seen[p.Name] = true
			validateParam(result, fmt.Sprintf("%s/params/%d", field, i), p)
		}
	}

	return result
}

func validateParam(result *ValidationResult, field string, p ParamConfig) {
	if strings.TrimSpace(p.Name) == "" {
		result.fail(field, "Parameter name is empty")
	}
	if !isParamType(p.Type) {
		result.fail(field+"/type", fmt.Sprintf("Unknown parameter type '%s'", p.Type))
		return
	}

	switch p.Type {
	case "choice":
		if len(p.Choices) == 0 {
			result.fail(field+"/choices", "A choice needs at least one value")
		}
	case "literal":
		if strings.TrimSpace(p.Value) == "" {
			result.fail(field+"/value", "A literal needs a value")
		}
	case "any_of":
		if len(p.AnyOf) == 0 {
			result.fail(field+"/any_of", "any_of needs at least one alternative")
		}
		for i, alt := range p.AnyOf {
			validateParam(result, fmt.Sprintf("%s/any_of/%d", field, i), alt)
		}
	}

	if p.Type != "choice" && len(p.Choices) > 0 {
		result.fail(field+"/choices", "Only a choice accepts choices")
	}
	if p.Type != "any_of" && len(p.AnyOf) > 0 {
		result.fail(field+"/any_of", "Only an any_of parameter accepts alternatives")
	}
	if p.OrSelf && p.Type != "player" {
		result.fail(field+"/or_self", "or_self is only supported on player parameters")
	}
	if p.Flag && (p.Repeated || p.Type == "remaining" || p.Type == "any_of") {
		result.fail(field+"/flag", fmt.Sprintf("A %s parameter cannot be a flag", describe(p)))
	}
}

func describe(p ParamConfig) string {
	if p.Repeated {
		return "repeated"
	}
	return p.Type
}

func isParamType(t string) bool {
	for _, known := range ParamTypes {
		if t == known {
			return true
		}
	}
	return false
}
