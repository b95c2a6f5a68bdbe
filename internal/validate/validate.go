package validate

import (
	"fmt"
	"strconv"

	"github.com/toolrelay/toolrelay/internal/errors"
	"github.com/toolrelay/toolrelay/internal/registry"
)

// Policy controls how arguments not declared on the descriptor are treated.
type Policy string

const (
	// RejectUnknown fails validation when the caller supplies an argument
	// the descriptor does not declare. This is the default.
	RejectUnknown Policy = "strict"

	// IgnoreUnknown silently drops undeclared arguments. Matches the loose
	// wire behavior some clients expect.
	IgnoreUnknown Policy = "ignore"
)

// Valid reports whether p is a recognized policy value.
func (p Policy) Valid() bool {
	return p == RejectUnknown || p == IgnoreUnknown
}

// Arguments checks raw against the tool's declared parameters and returns the
// validated argument map, or the first validation failure encountered.
//
// Parameters are processed in descriptor declaration order: a missing
// required parameter is reported before a type mismatch on a later one.
// Missing optional parameters take their declared default. Numeric strings
// coerce to numbers where the declared kind is number.
func Arguments(tool *registry.Tool, raw map[string]any, policy Policy) (map[string]any, error) {
	if raw == nil {
		raw = map[string]any{}
	}

	validated := make(map[string]any, len(tool.Params))

	for _, p := range tool.Params {
		value, present := raw[p.Name]
		if !present {
			if p.Required {
				return nil, &errors.ValidationError{
					Argument: p.Name,
					Reason:   "missing required argument",
				}
			}

			if p.Default != nil {
				validated[p.Name] = p.Default
			}

			continue
		}

		coerced, err := coerce(p, value)
		if err != nil {
			return nil, err
		}

		validated[p.Name] = coerced
	}

	if policy == RejectUnknown {
		for name := range raw {
			if !declared(tool, name) {
				return nil, &errors.ValidationError{
					Argument: name,
					Reason:   "argument not declared for tool " + tool.Name,
				}
			}
		}
	}

	return validated, nil
}

// declared reports whether the descriptor declares a parameter called name.
func declared(tool *registry.Tool, name string) bool {
	for _, p := range tool.Params {
		if p.Name == name {
			return true
		}
	}

	return false
}

// coerce converts value to the parameter's declared kind.
func coerce(p registry.Param, value any) (any, error) {
	switch p.Kind {
	case registry.Number:
		return coerceNumber(p.Name, value)

	case registry.String:
		s, ok := value.(string)
		if !ok {
			return nil, mismatch(p.Name, "string", value)
		}

		return s, nil

	case registry.Object:
		m, ok := value.(map[string]any)
		if !ok {
			return nil, mismatch(p.Name, "object", value)
		}

		return m, nil

	default:
		return nil, &errors.ValidationError{
			Argument: p.Name,
			Reason:   fmt.Sprintf("unsupported parameter kind %q", p.Kind),
		}
	}
}

// coerceNumber normalizes every accepted numeric representation to float64,
// which is what JSON decoding produces for numbers anyway.
func coerceNumber(name string, value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return v, nil

	case float32:
		return float64(v), nil

	case int:
		return float64(v), nil

	case int64:
		return float64(v), nil

	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, mismatch(name, "number", value)
		}

		return f, nil

	default:
		return nil, mismatch(name, "number", value)
	}
}

func mismatch(name, expected string, got any) *errors.ValidationError {
	return &errors.ValidationError{
		Argument: name,
		Reason:   fmt.Sprintf("expected %s, got %T", expected, got),
	}
}
