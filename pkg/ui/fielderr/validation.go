package fielderr

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator that reports fields by their `form` tag,
// so errors line up with element ids on the page.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// FromValidation converts validator errors into FieldErrors, one per field,
// joining multiple failures for the same field with newlines. Errors that are
// not validation errors are returned unchanged.
func FromValidation(err error) ([]FieldError, error) {
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	var out []FieldError
	index := make(map[string]int, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		msg := describe(fe)
		if i, ok := index[name]; ok {
			out[i].Message += "\n" + msg
			continue
		}
		index[name] = len(out)
		out = append(out, FieldError{Name: name, Message: msg})
	}
	return out, nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "url", "http_url":
		return "Must be a valid URL"
	case "hostname", "hostname_rfc1123", "fqdn":
		return "Must be a valid host name"
	case "filepath", "dirpath":
		return "Must be a valid path"
	case "startswith":
		return fmt.Sprintf("Must start with %q", fe.Param())
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return fmt.Sprintf("Invalid value (%s)", fe.Tag())
	}
}
