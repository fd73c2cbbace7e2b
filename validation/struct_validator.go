package validation

import (
	stderrors "errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/apikit/errors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// Engine returns the shared validator instance. Field names in messages come
// from json tags.
func Engine() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return toSnakeCase(fld.Name)
			}
			return name
		})
	})
	return validate
}

// Validate checks s against its `validate` struct tags. Violations become a
// single BAD_REQUEST error listing every field. Values that are not structs
// (or pointers to structs) have nothing to check and pass.
func Validate(s any) *errors.Error {
	if reflect.Indirect(reflect.ValueOf(s)).Kind() != reflect.Struct {
		return nil
	}
	err := Engine().Struct(s)
	if err == nil {
		return nil
	}
	return FromError(err)
}

// FromError converts a validator error into a BAD_REQUEST error. Errors that
// did not come from the validator are wrapped as a generic bad request.
func FromError(err error) *errors.Error {
	var ve validator.ValidationErrors
	if !stderrors.As(err, &ve) {
		return errors.BadRequest("validation failed").WithCause(err)
	}

	fields := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		fields = append(fields, FieldError{
			Field:   e.Field(),
			Message: formatValidationError(e),
		})
	}
	return fieldsError(fields).WithCause(err)
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "url":
		return "must be a valid URL"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}

// toSnakeCase converts a Go field name to snake_case.
func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
