package schema

import (
	"fmt"
	"strings"

	"github.com/robinvdvleuten/lucaschema/model"
)

// ErrorType classifies a FieldError.
type ErrorType string

const (
	ValidationErrorType ErrorType = "VALIDATION_ERROR"
	SchemaErrorType     ErrorType = "SCHEMA_ERROR"
	TypeErrorType       ErrorType = "TYPE_ERROR"
	RuntimeErrorType    ErrorType = "RUNTIME_ERROR"
)

type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// FieldError is one structural problem with a record.
type FieldError struct {
	Type       ErrorType `json:"type"`
	Severity   Severity  `json:"severity"`
	Code       string    `json:"code"`
	Field      string    `json:"field,omitempty"` // Path such as transactions[2].amount
	Rule       string    `json:"rule,omitempty"`
	Message    string    `json:"message"`
	Value      any       `json:"value,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError aggregates every FieldError found in one record or document.
type ValidationError struct {
	Schema model.SchemaType `json:"schema"`
	Errors []FieldError     `json:"errors"`
}

func (e *ValidationError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "validation failed"
	case 1:
		return e.Errors[0].Error()
	}
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Error()
	}
	return fmt.Sprintf("validation failed with %d errors: %s", len(e.Errors), strings.Join(msgs, ", "))
}

// Unwrap returns the field errors for errors.As and errors.Is.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, fe := range e.Errors {
		errs[i] = fe
	}
	return errs
}

// Fields returns the paths of every failing field in report order.
func (e *ValidationError) Fields() []string {
	fields := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		fields[i] = fe.Field
	}
	return fields
}

// TypeError reports a value that decoded to the wrong type, such as a
// fractional amount where integer minor units are required.
func TypeError(field, expected string, value any) FieldError {
	return FieldError{
		Type:       TypeErrorType,
		Severity:   SeverityMedium,
		Code:       "TYPE_MISMATCH",
		Field:      field,
		Rule:       "type",
		Message:    fmt.Sprintf("must be %s", expected),
		Value:      value,
		Suggestion: typeSuggestion(expected, value),
	}
}

// SchemaError reports a record that does not match the schema it was
// validated against.
func SchemaError(schema model.SchemaType, message string) *ValidationError {
	return &ValidationError{
		Schema: schema,
		Errors: []FieldError{{
			Type:     SchemaErrorType,
			Severity: SeverityHigh,
			Code:     "INVALID_SCHEMA",
			Message:  message,
		}},
	}
}

// RuntimeError reports a failure of the validation machinery itself.
func RuntimeError(code, message string) FieldError {
	return FieldError{
		Type:     RuntimeErrorType,
		Severity: SeverityHigh,
		Code:     code,
		Message:  message,
	}
}
