// Package schema checks Luca records against their structural rules: required
// fields, UUID ids, calendar dates, RFC 3339 timestamps, closed enumerations
// and the safe range of minor-unit amounts.
//
// Balance rules live in package journal; a document that passes here can still
// hold journal entries that do not balance.
//
// A Validator is built once and is safe for concurrent use:
//
//	v := schema.New()
//	if err := v.Validate(doc); err != nil {
//	    var verr *schema.ValidationError
//	    if errors.As(err, &verr) {
//	        for _, fe := range verr.Errors {
//	            fmt.Println(fe.Field, fe.Message, fe.Suggestion)
//	        }
//	    }
//	}
package schema

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/lucaschema/model"
	"github.com/robinvdvleuten/lucaschema/telemetry"
)

// Validator validates Luca documents and records.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with the Luca rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for reserved tag names, none of which are used here.
	must(v.RegisterValidation("id", validateID))
	must(v.RegisterValidation("date", validateDate))
	must(v.RegisterValidation("timestamp", validateTimestamp))
	must(v.RegisterValidation("amount", validateAmount))
	must(v.RegisterValidation("nonzero", validateNonZero))
	must(v.RegisterValidation("enum", validateEnum))

	return &Validator{validate: v}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Validate checks a whole document.
func (v *Validator) Validate(doc *model.Document) error {
	return v.ValidateContext(context.Background(), doc)
}

// ValidateContext is Validate with cancellation and timing.
func (v *Validator) ValidateContext(ctx context.Context, doc *model.Document) error {
	timer := telemetry.StartTimer(ctx, "schema.validate")
	defer timer.End()

	if doc == nil {
		return SchemaError(model.SchemaLucaSchema, "document is empty")
	}
	return v.check(ctx, model.SchemaLucaSchema, doc)
}

// ValidateRecord checks a single record against the rules of schemaType. The
// record may be a value or a pointer; it must have the Go type that belongs to
// schemaType (model.Transaction for "transaction" and so on).
func (v *Validator) ValidateRecord(schemaType model.SchemaType, record any) error {
	want, ok := recordTypes[schemaType]
	if !ok {
		return SchemaError(schemaType, fmt.Sprintf("unknown schema %q", schemaType))
	}

	got := reflect.TypeOf(record)
	if got != nil && got.Kind() == reflect.Pointer {
		if reflect.ValueOf(record).IsNil() {
			return SchemaError(schemaType, "record is nil")
		}
		got = got.Elem()
	}
	if got != want {
		return SchemaError(schemaType, fmt.Sprintf("expected %s, got %v", want, got))
	}
	return v.check(context.Background(), schemaType, record)
}

var recordTypes = map[model.SchemaType]reflect.Type{
	model.SchemaAccount:                   reflect.TypeOf(model.Account{}),
	model.SchemaCategory:                  reflect.TypeOf(model.Category{}),
	model.SchemaEntity:                    reflect.TypeOf(model.Entity{}),
	model.SchemaLucaSchema:                reflect.TypeOf(model.Document{}),
	model.SchemaRecurringTransaction:      reflect.TypeOf(model.RecurringTransaction{}),
	model.SchemaRecurringTransactionEvent: reflect.TypeOf(model.RecurringTransactionEvent{}),
	model.SchemaTransaction:               reflect.TypeOf(model.Transaction{}),
}

func (v *Validator) check(ctx context.Context, schemaType model.SchemaType, record any) error {
	err := v.validate.StructCtx(ctx, record)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return &ValidationError{Schema: schemaType, Errors: []FieldError{RuntimeError("INVALID_INPUT", invalid.Error())}}
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &ValidationError{Schema: schemaType, Errors: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Errors = append(out.Errors, convert(fe))
	}
	return out
}

func convert(fe validator.FieldError) FieldError {
	info := describe(fe.Tag())
	return FieldError{
		Type:       ValidationErrorType,
		Severity:   info.severity,
		Code:       info.code,
		Field:      fieldPath(fe.Namespace()),
		Rule:       fe.Tag(),
		Message:    message(fe.Tag(), fe.Param()),
		Value:      fe.Value(),
		Suggestion: suggest(fe.Tag(), fe.Param(), fe.Field(), fe.Value()),
	}
}

// fieldPath drops the root struct name from a validator namespace, turning
// "Document.transactions[2].amount" into "transactions[2].amount".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func validateID(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return len(s) == 36 && uuid.Validate(s) == nil
}

func validateDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	normalized, ok := model.NormalizeDate(s)
	return ok && normalized == s
}

func validateTimestamp(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.RFC3339, fl.Field().String())
	return err == nil
}

func validateAmount(fl validator.FieldLevel) bool {
	n := fl.Field().Int()
	return n >= -model.MaxSafeAmount && n <= model.MaxSafeAmount
}

func validateNonZero(fl validator.FieldLevel) bool {
	return fl.Field().Int() != 0
}

func validateEnum(fl validator.FieldLevel) bool {
	return slices.Contains(model.EnumValues(fl.Param()), fl.Field().String())
}
