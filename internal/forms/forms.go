// Package forms turns submitted form data into typed, validated request structs.
package forms

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"groupme/internal/core"
)

const maxMemory = 10 << 20

var (
	decoder  = form.NewDecoder()
	validate = newValidator()
)

// verbatim fields keep surrounding whitespace, it is part of the secret.
var verbatim = []string{"password"}

// Error lists the fields that failed decoding or validation, keyed by form field name.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := lo.Keys(e.Fields)
	slices.Sort(keys)

	return fmt.Sprintf("%s: %s", core.ErrValidation, strings.Join(lo.Map(keys, func(key string, _ int) string {
		return key + " " + e.Fields[key]
	}), ", "))
}

func (e *Error) Unwrap() error {
	return core.ErrValidation
}

// Parse reads url-encoded or multipart form data, including the query string, into T.
func Parse[T any](r *http.Request) (T, error) {
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(maxMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		var zero T
		return zero, &Error{Fields: map[string]string{"form": err.Error()}}
	}

	return Decode[T](r.Form)
}

// Decode trims every value except passwords, decodes it into T and validates the result.
func Decode[T any](values url.Values) (T, error) {
	var req T

	trimmed := make(url.Values, len(values))
	for key, vals := range values {
		if slices.Contains(verbatim, key) {
			trimmed[key] = vals
			continue
		}
		trimmed[key] = lo.Map(vals, func(v string, _ int) string { return strings.TrimSpace(v) })
	}

	if err := decoder.Decode(&req, trimmed); err != nil {
		var decodeErrs form.DecodeErrors
		if errors.As(err, &decodeErrs) {
			return req, &Error{Fields: lo.MapValues(decodeErrs, func(err error, _ string) string {
				return "is malformed"
			})}
		}
		return req, err
	}

	if err := validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return req, &Error{Fields: lo.Associate(validationErrs, func(fe validator.FieldError) (string, string) {
				return fe.Field(), describe(fe)
			})}
		}
		return req, err
	}

	return req, nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be an email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag()
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
