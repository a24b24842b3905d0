package wopr

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/wopr-network/wopr-go/core"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateParams checks params against their struct tags and reports the
// first violation as a *core.ValidationError.
func validateParams(params any) error {
	err := validate.Struct(params)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &core.ValidationError{Field: fe.Field(), Message: describe(fe)}
	}
	return &core.ValidationError{Message: err.Error()}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

// Ptr returns a pointer to v, for optional numeric parameters.
func Ptr[T any](v T) *T {
	return &v
}
