package settings

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ErrInvalidSettings is wrapped by every ValidationError.
var ErrInvalidSettings = errors.New("settings: invalid settings")

// ValidationError reports a field that broke its `validate` rule.
type ValidationError struct {
	Field  string // dotted mapstructure path, e.g. "retry.max_retries"
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("settings: %s: %s (got %v)", e.Field, e.Reason, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidSettings
}

// Validate checks the `validate` tags of a struct and its nested structs.
// Supported rules: required, min=N, max=N and oneof=a|b|c (case-insensitive).
// Every violation is reported; the result joins them.
func Validate(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	var errs []error
	walk(rv, "", &errs)
	return errors.Join(errs...)
}

// Validate checks s against its field rules.
func (s *Settings) Validate() error {
	return Validate(s)
}

func walk(rv reflect.Value, prefix string, errs *[]error) {
	rt := rv.Type()
	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		name := sf.Tag.Get("mapstructure")
		if name == "" || name == "-" {
			name = strings.ToLower(sf.Name)
		}
		if prefix != "" {
			name = prefix + "." + name
		}

		field := rv.Field(i)
		tag := sf.Tag.Get("validate")
		if field.Kind() == reflect.Struct && tag == "" {
			walk(field, name, errs)
			continue
		}

		for _, rule := range strings.Split(tag, ",") {
			rule = strings.TrimSpace(rule)
			if rule == "" {
				continue
			}
			if err := check(field, name, rule); err != nil {
				*errs = append(*errs, err)
			}
		}
	}
}

func check(field reflect.Value, name, rule string) error {
	key, arg, _ := strings.Cut(rule, "=")
	fail := func(reason string) error {
		return &ValidationError{Field: name, Value: field.Interface(), Reason: reason}
	}

	switch key {
	case "required":
		if field.IsZero() {
			return fail("is required")
		}
	case "min", "max":
		limit, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil
		}
		n, ok := measure(field)
		if !ok {
			return nil
		}
		if key == "min" && n < limit {
			return fail("must be at least " + arg)
		}
		if key == "max" && n > limit {
			return fail("must be at most " + arg)
		}
	case "oneof":
		if field.Kind() != reflect.String || field.String() == "" {
			return nil
		}
		for _, option := range strings.Split(arg, "|") {
			if strings.EqualFold(field.String(), option) {
				return nil
			}
		}
		return fail("must be one of " + strings.ReplaceAll(arg, "|", ", "))
	}
	return nil
}

// measure returns the number a min/max rule compares: the value of numbers
// and the length of strings, slices and maps.
func measure(field reflect.Value) (float64, bool) {
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(field.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(field.Uint()), true
	case reflect.Float32, reflect.Float64:
		return field.Float(), true
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return float64(field.Len()), true
	}
	return 0, false
}
