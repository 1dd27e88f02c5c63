package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Name fields after the variable that sets them.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name, _, _ := strings.Cut(f.Tag.Get("env"), ","); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

// FieldError is a single failed rule. Field is the env variable name when
// the struct field carries an `env` tag.
type FieldError struct {
	Field string
	Rule  string
	Msg   string
}

func (e *FieldError) Error() string {
	return e.Field + " " + e.Msg
}

// Validate checks s against its `validate` tags and returns one *FieldError
// per failing field, joined with errors.Join.
func Validate(s any) error {
	err := validate.Struct(s)
	var failures validator.ValidationErrors
	if !errors.As(err, &failures) {
		return err
	}

	errs := make([]error, 0, len(failures))
	for _, fe := range failures {
		errs = append(errs, &FieldError{Field: fe.Field(), Rule: fe.Tag(), Msg: describe(fe)})
	}
	return errors.Join(errs...)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must be set"
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "oneof":
		return "must be one of [" + fe.Param() + "]"
	case "hostname_port":
		return fmt.Sprintf("has %q, want host:port", fe.Value())
	default:
		return "fails " + fe.Tag()
	}
}
