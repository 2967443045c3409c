package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Global validator instance for reuse. Field names in error output come
// from the json tag, so clients see "fullName", not "FullName".
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ValidateRequest validates the given struct using the validator package and
// converts any failures to APIError entries for the uniform error body.
// Returns nil when the value is valid.
func ValidateRequest(v interface{}) []APIError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []APIError{{Message: "Validation failure"}}
	}

	out := make([]APIError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, APIError{
			Message: validationMessage(fe),
			Rule:    fe.Tag(),
			Field:   fe.Field(),
		})
	}
	return out
}

// validationMessage renders a short human-readable message for a failed rule.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "The " + fe.Field() + " field is required"
	case "email":
		return "The " + fe.Field() + " field must be a valid email address"
	case "min":
		return "The " + fe.Field() + " field must be at least " + fe.Param() + " characters"
	case "max":
		return "The " + fe.Field() + " field must be at most " + fe.Param() + " characters"
	default:
		return "The " + fe.Field() + " field is invalid"
	}
}
