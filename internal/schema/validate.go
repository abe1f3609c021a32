package schema

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/hugo-ops/hugo/internal/types"
)

// codeFencePattern matches a markdown code fence with optional language tag.
// Captures: (1) optional language, (2) content.
var codeFencePattern = regexp.MustCompile("(?s)```(\\w*)\\s*\n?(.+?)\n?```")

// Violation describes a single schema violation found in a response.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// Error implements the error interface
func (v Violation) Error() string {
	if v.Value != nil {
		return fmt.Sprintf("%s: %s (value: %v)", v.Field, v.Message, v.Value)
	}
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ValidationError aggregates every violation found in one validation pass.
// All fields are checked before reporting so a single malformed response
// yields a complete diagnosis instead of only its first defect.
type ValidationError struct {
	Violations []Violation
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}
	return fmt.Sprintf("%d schema violation(s): %s", len(e.Violations), strings.Join(msgs, "; "))
}

// Validate checks a raw oracle response against the schema and returns the
// validated field values. It is a total function: every input maps to either
// a field map or a typed error, never a panic.
//
// The response may be wrapped in a markdown code fence even though the
// prompt forbids it; the fence is stripped before parsing. This tolerates
// oracle non-compliance rather than endorsing it.
//
// No type coercion is performed: a string "0.8" does not satisfy a number
// field and an integer-looking string does not satisfy an enum of numbers.
// Nullable fields that are absent are filled with null (empty array for
// array fields) so the returned map always contains every declared field.
func Validate(s Schema, raw string) (map[string]any, error) {
	text := StripFence(raw)

	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, types.WrapError(types.RESPONSE_MALFORMED_JSON,
			fmt.Sprintf("response is not valid JSON: %s", snippet(text)), err)
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, types.NewError(types.RESPONSE_MALFORMED_JSON,
			fmt.Sprintf("response is not a JSON object: %s", snippet(text)))
	}

	var violations []Violation
	out := make(map[string]any, len(s.Fields))

	for _, f := range s.Fields {
		value, present := obj[f.Name]

		if !present {
			if f.Nullable {
				out[f.Name] = nullFill(f)
				continue
			}
			violations = append(violations, Violation{
				Field:   f.Name,
				Message: "required field is missing",
			})
			continue
		}

		if value == nil {
			if f.Nullable {
				out[f.Name] = nullFill(f)
				continue
			}
			violations = append(violations, Violation{
				Field:   f.Name,
				Message: "required field is null",
			})
			continue
		}

		fieldViolations := validateValue(f.Name, f, value)
		if len(fieldViolations) > 0 {
			violations = append(violations, fieldViolations...)
			continue
		}
		out[f.Name] = value
	}

	if len(violations) > 0 {
		return nil, types.WrapError(types.RESPONSE_SCHEMA_VIOLATION,
			"response violates decision schema", &ValidationError{Violations: violations})
	}

	return out, nil
}

// validateValue checks a single non-null value against its field spec.
func validateValue(path string, f FieldSpec, value any) []Violation {
	switch f.Kind {
	case KindString:
		if _, ok := value.(string); !ok {
			return []Violation{{Field: path, Message: fmt.Sprintf("expected string, got %s", jsonTypeOf(value)), Value: value}}
		}

	case KindBool:
		if _, ok := value.(bool); !ok {
			return []Violation{{Field: path, Message: fmt.Sprintf("expected boolean, got %s", jsonTypeOf(value)), Value: value}}
		}

	case KindNumber:
		num, ok := value.(float64)
		if !ok {
			return []Violation{{Field: path, Message: fmt.Sprintf("expected number, got %s", jsonTypeOf(value)), Value: value}}
		}
		var violations []Violation
		if f.Minimum != nil && num < *f.Minimum {
			violations = append(violations, Violation{Field: path, Message: fmt.Sprintf("value must be at least %v", *f.Minimum), Value: value})
		}
		if f.Maximum != nil && num > *f.Maximum {
			violations = append(violations, Violation{Field: path, Message: fmt.Sprintf("value must be at most %v", *f.Maximum), Value: value})
		}
		return violations

	case KindEnum:
		str, ok := value.(string)
		if !ok {
			return []Violation{{Field: path, Message: fmt.Sprintf("expected string, got %s", jsonTypeOf(value)), Value: value}}
		}
		for _, allowed := range f.Enum {
			if str == allowed {
				return nil
			}
		}
		return []Violation{{Field: path, Message: fmt.Sprintf("value must be one of: %s", strings.Join(f.Enum, ", ")), Value: value}}

	case KindArray:
		arr, ok := value.([]any)
		if !ok {
			return []Violation{{Field: path, Message: fmt.Sprintf("expected array, got %s", jsonTypeOf(value)), Value: value}}
		}
		var violations []Violation
		if f.Items != nil {
			for i, item := range arr {
				itemPath := fmt.Sprintf("%s[%d]", path, i)
				if item == nil {
					violations = append(violations, Violation{Field: itemPath, Message: "array element is null"})
					continue
				}
				violations = append(violations, validateValue(itemPath, *f.Items, item)...)
			}
		}
		return violations

	default:
		return []Violation{{Field: path, Message: fmt.Sprintf("unknown field kind %q", f.Kind)}}
	}

	return nil
}

// StripFence removes a surrounding markdown code fence if present.
// Text without a fence is returned trimmed but otherwise untouched.
func StripFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	match := codeFencePattern.FindStringSubmatch(text)
	if len(match) < 3 {
		return text
	}

	lang := strings.ToLower(match[1])
	if lang != "" && lang != "json" {
		return text
	}

	return strings.TrimSpace(match[2])
}

// nullFill returns the fill value for an absent nullable field.
func nullFill(f FieldSpec) any {
	if f.Kind == KindArray {
		return []any{}
	}
	return nil
}

// jsonTypeOf names the JSON type of a decoded value for violation messages.
func jsonTypeOf(value any) string {
	switch value.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case nil:
		return "null"
	default:
		return "unknown"
	}
}

// snippet truncates text for inclusion in error messages.
func snippet(text string) string {
	const max = 120
	text = strings.TrimSpace(text)
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
