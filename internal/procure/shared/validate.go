package shared

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/odyssey-erp/procuredesk/internal/platform/webhook"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return field.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(value reflect.Value) interface{} {
		amount, ok := value.Interface().(Amount)
		if !ok {
			return nil
		}
		f, _ := amount.Float64()
		return f
	}, Amount{})
	v.RegisterCustomTypeFunc(func(value reflect.Value) interface{} {
		date, ok := value.Interface().(Date)
		if !ok {
			return nil
		}
		return date.String()
	}, Date{})
	return v
}

// FieldErrors maps an input field to the rule it failed.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for key := range e {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+e[key])
	}
	return "invalid input: " + strings.Join(parts, ", ")
}

// Unwrap lets errors.Is(err, webhook.ErrValidation) match.
func (e FieldErrors) Unwrap() error {
	return webhook.ErrValidation
}

// Validate runs the struct's validate tags. Only presence and format rules
// are checked here; business rules belong to the backend.
func Validate(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		out := make(FieldErrors, len(fieldErrs))
		for _, fe := range fieldErrs {
			out[fe.Field()] = fe.Tag()
		}
		return out
	}
	return fmt.Errorf("%w: %v", webhook.ErrValidation, err)
}

// RequireUUID checks that value is a well-formed UUID.
func RequireUUID(field, value string) error {
	if _, err := uuid.Parse(strings.TrimSpace(value)); err != nil {
		return FieldErrors{field: "uuid"}
	}
	return nil
}
