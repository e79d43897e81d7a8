// Package serializers validates request payloads against entity field
// constraints and maps entities to their wire representation.
//
// Validation never stops at the first problem: every failing field is
// collected into a single *apperror.ValidationError.
package serializers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"catalog/internal/apperror"

	"github.com/go-playground/validator/v10"
)

// Payload is a decoded JSON object keyed by field name. Keeping raw values
// lets each field report its own type error and lets partial updates tell
// absent fields from zero values.
type Payload map[string]json.RawMessage

const (
	msgRequired    = "This field is required."
	msgNull        = "This field may not be null."
	msgBlank       = "This field may not be blank."
	msgInvalidStr  = "Not a valid string."
	msgInvalidInt  = "A valid integer is required."
	msgInvalidSlug = "Enter a valid \"slug\" consisting of letters, numbers, underscores or hyphens."
	msgImmutable   = "This field cannot be changed."
	nonFieldErrors = "non_field_errors"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report json field names instead of Go struct field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// DecodePayload parses a request body into a Payload. An empty body decodes
// to an empty Payload so required-field errors are reported normally.
func DecodePayload(body []byte) (Payload, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return Payload{}, nil
	}

	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperror.FieldError(nonFieldErrors, "JSON parse error - "+err.Error())
	}
	if _, ok := raw.(map[string]interface{}); !ok {
		return nil, apperror.FieldError(nonFieldErrors, fmt.Sprintf("Invalid data. Expected a dictionary, but got %s.", jsonKind(raw)))
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apperror.FieldError(nonFieldErrors, "JSON parse error - "+err.Error())
	}
	return payload, nil
}

func jsonKind(v interface{}) string {
	switch v.(type) {
	case []interface{}:
		return "list"
	case string:
		return "str"
	case float64:
		return "number"
	case bool:
		return "bool"
	case nil:
		return "null"
	default:
		return "unknown"
	}
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// stringField extracts field as a string. It returns nil when the field is
// absent or invalid; invalid values are recorded in errs.
func stringField(p Payload, field string, errs *apperror.ValidationError) *string {
	raw, ok := p[field]
	if !ok {
		return nil
	}
	if isNull(raw) {
		errs.Add(field, msgNull)
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		errs.Add(field, msgInvalidStr)
		return nil
	}
	return &s
}

// intField extracts field as an integer. Integral JSON numbers and numeric
// strings are accepted.
func intField(p Payload, field string, errs *apperror.ValidationError) *int64 {
	raw, ok := p[field]
	if !ok {
		return nil
	}
	if isNull(raw) {
		errs.Add(field, msgNull)
		return nil
	}

	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil && f == float64(int64(f)) {
		n = int64(f)
		return &n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if parsed, perr := strconv.ParseInt(strings.TrimSpace(s), 10, 64); perr == nil {
			return &parsed
		}
	}
	errs.Add(field, msgInvalidInt)
	return nil
}

// requireFields records a failure for every listed field absent from p.
func requireFields(p Payload, errs *apperror.ValidationError, fields ...string) {
	for _, field := range fields {
		if _, ok := p[field]; !ok {
			errs.Add(field, msgRequired)
		}
	}
}

// ValidateStruct checks the validate tags of a request struct and returns a
// *apperror.ValidationError listing every failing field, or nil.
func ValidateStruct(v interface{}) error {
	errs := apperror.NewValidationError()
	checkConstraints(v, errs)
	if errs.HasErrors() {
		return errs
	}
	return nil
}

// checkConstraints runs the struct tags of fields and records every failure.
func checkConstraints(fields interface{}, errs *apperror.ValidationError) {
	err := validate.Struct(fields)
	if err == nil {
		return
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errs.Add(nonFieldErrors, err.Error())
		return
	}
	for _, fe := range validationErrors {
		errs.Add(fe.Field(), constraintMessage(fe))
	}
}

func constraintMessage(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "min":
		if isString && fe.Param() == "1" {
			return msgBlank
		}
		if isString {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "slug":
		return msgInvalidSlug
	default:
		return fmt.Sprintf("Field '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
	}
}
