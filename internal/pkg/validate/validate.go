package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"campus-jobs/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

const MessageInvalidInput = "Invalid form data"

var v = newValidator()

func newValidator() *validator.Validate {
	vd := validator.New(validator.WithRequiredStructEnabled())
	vd.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return vd
}

// Struct validates in against its `validate` tags. A failure is returned as a
// VALIDATION error whose Fields are keyed by JSON field name.
func Struct(in any) error {
	err := v.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errs.Internal("validation failed", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, ok := fields[fe.Field()]; ok {
			continue
		}
		fields[fe.Field()] = describe(fe)
	}
	return errs.Validation(MessageInvalidInput, fields)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "uuid", "uuid4":
		return "must be a valid id"
	case "url":
		return "must be a valid URL"
	default:
		return "is invalid"
	}
}
