package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report env variable names when a field carries one, so errors point at
	// the knob an operator can actually turn.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := strings.SplitN(fld.Tag.Get("env"), ",", 2)[0]; name != "" {
			return name
		}
		return fld.Name
	})
	return v
}

// RegisterStructRule registers a struct-level validation rule for the given types.
func RegisterStructRule(rule validator.StructLevelFunc, types ...any) {
	validate.RegisterStructValidation(rule, types...)
}

// Validate checks struct tags and registered struct rules on target.
func Validate(target any) error {
	err := validate.Struct(target)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	return &ValidationError{Fields: fieldErrs}
}

// ValidationError reports failed fields by env name. The underlying
// validator.ValidationErrors stay reachable through errors.As.
type ValidationError struct {
	Fields validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Fields))
	for _, fieldErr := range e.Fields {
		messages = append(messages, fieldMessage(fieldErr))
	}
	return "invalid config: " + strings.Join(messages, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.Fields
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "bcp47_language_tag":
		return fmt.Sprintf("%s has invalid language tag %q", field, fe.Value())
	case "gte", "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		if param := fe.Param(); param != "" {
			return fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), param)
		}
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

// ValidateVar checks a single value against tag, e.g. "required,email".
func ValidateVar(value any, tag string) error {
	return validate.Var(value, tag)
}
