package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/robinvdvleuten/lucaschema/model"
)

const (
	exampleUUID      = "123e4567-e89b-12d3-a456-426614174000"
	exampleDate      = "2024-01-01"
	exampleTimestamp = "2024-01-01T00:00:00Z"
)

// ruleInfo describes how a failed validation rule is reported.
type ruleInfo struct {
	code     string
	severity Severity
}

var rules = map[string]ruleInfo{
	"required":  {"REQUIRED", SeverityHigh},
	"id":        {"INVALID_FORMAT", SeverityMedium},
	"date":      {"INVALID_FORMAT", SeverityMedium},
	"timestamp": {"INVALID_FORMAT", SeverityMedium},
	"amount":    {"OUT_OF_RANGE", SeverityHigh},
	"nonzero":   {"ZERO_AMOUNT", SeverityHigh},
	"enum":      {"INVALID_ENUM", SeverityMedium},
	"min":       {"OUT_OF_RANGE", SeverityMedium},
	"max":       {"OUT_OF_RANGE", SeverityLow},
}

func describe(tag string) ruleInfo {
	if info, ok := rules[tag]; ok {
		return info
	}
	return ruleInfo{"VALIDATION_FAILED", SeverityMedium}
}

func message(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "id":
		return "must be a UUID"
	case "date":
		return "must be a date in YYYY-MM-DD format"
	case "timestamp":
		return "must be an RFC 3339 timestamp"
	case "amount":
		return fmt.Sprintf("must be between %d and %d minor units", -model.MaxSafeAmount, model.MaxSafeAmount)
	case "nonzero":
		return "must not be zero"
	case "enum":
		return "must be one of " + strings.Join(model.EnumValues(param), ", ")
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	default:
		return "failed " + tag + " validation"
	}
}

// suggest returns a hint for fixing a failed rule, or an empty string when
// there is nothing more useful to say than the message.
func suggest(tag, param, name string, value any) string {
	switch tag {
	case "required":
		return fmt.Sprintf("The field %q is required", name)
	case "id":
		return fmt.Sprintf("Provide a valid UUID (e.g., %q)", exampleUUID)
	case "date":
		if s, ok := value.(string); ok && model.IsDateFixable(s) {
			fixed, _ := model.NormalizeDate(s)
			return fmt.Sprintf("Rewrite the date as %q (luca fix does this)", fixed)
		}
		return fmt.Sprintf("Provide a valid date in YYYY-MM-DD format (e.g., %q)", exampleDate)
	case "timestamp":
		return fmt.Sprintf("Provide a valid timestamp in RFC 3339 format (e.g., %q)", exampleTimestamp)
	case "amount":
		if n, ok := value.(int64); ok && n < 0 {
			return fmt.Sprintf("Value must be at least %d", -model.MaxSafeAmount)
		}
		return fmt.Sprintf("Value must be at most %d", model.MaxSafeAmount)
	case "nonzero":
		return "Record the amount in minor units (e.g., 100.50 → 10050) or remove the posting"
	case "min":
		return "Value must be at least " + param
	case "max":
		if _, ok := value.(string); ok {
			return fmt.Sprintf("Value must be at most %s characters", param)
		}
		return "Value must be at most " + param
	case "enum":
		values := model.EnumValues(param)
		if len(values) == 0 {
			return "Value must be one of: specified values"
		}
		return "Value must be one of: " + strings.Join(values, ", ")
	default:
		return ""
	}
}

func typeSuggestion(expected string, value any) string {
	if expected == "integer" {
		if f, ok := asFloat(value); ok && f != math.Trunc(f) {
			return "Convert decimal amount to integer cents (e.g., 100.50 → 10050)"
		}
		return fmt.Sprintf("Expected integer but received %s", kindOf(value))
	}
	return fmt.Sprintf("Expected %s but received %s", expected, kindOf(value))
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func kindOf(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64, int, int64, json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}
