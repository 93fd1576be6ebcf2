package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/robinvdvleuten/lucaschema/model"
)

// CheckTypes compares a generically decoded document (maps, slices and
// scalars, as produced by encoding/json with UseNumber or by yaml.v3) with the
// Go type of target and reports every value of the wrong kind. It runs before
// decoding into model types, so a fractional amount is reported with its path
// and value instead of aborting the decode.
//
// Null values and unknown keys are not reported; the rule checks in Validate
// cover missing fields. yaml.v3 turns unquoted dates into time.Time, which is
// accepted wherever a string is expected.
func CheckTypes(schemaType model.SchemaType, raw any, target any) error {
	var errs []FieldError
	checkValue("", raw, reflect.TypeOf(target), &errs)
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Schema: schemaType, Errors: errs}
}

func checkValue(path string, raw any, t reflect.Type, errs *[]FieldError) {
	if raw == nil {
		return
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Struct:
		obj, ok := raw.(map[string]any)
		if !ok {
			*errs = append(*errs, TypeError(path, "object", raw))
			return
		}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				continue
			}
			if v, ok := obj[name]; ok {
				checkValue(join(path, name), v, f.Type, errs)
			}
		}

	case reflect.Slice:
		arr, ok := raw.([]any)
		if !ok {
			*errs = append(*errs, TypeError(path, "array", raw))
			return
		}
		for i, v := range arr {
			checkValue(fmt.Sprintf("%s[%d]", path, i), v, t.Elem(), errs)
		}

	case reflect.String:
		switch raw.(type) {
		case string, time.Time:
		default:
			*errs = append(*errs, TypeError(path, "string", raw))
		}

	case reflect.Bool:
		if _, ok := raw.(bool); !ok {
			*errs = append(*errs, TypeError(path, "boolean", raw))
		}

	case reflect.Int, reflect.Int64:
		if !isInteger(raw) {
			*errs = append(*errs, TypeError(path, "integer", raw))
		}
	}
}

func isInteger(raw any) bool {
	switch v := raw.(type) {
	case int, int64, uint64:
		return true
	case json.Number:
		_, err := v.Int64()
		return err == nil
	case float64:
		return v == math.Trunc(v) && math.Abs(v) <= float64(math.MaxInt64)
	default:
		return false
	}
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
