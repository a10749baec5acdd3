package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/calorie-api/internal/domain"
)

// Validation tags backed by the domain validators.
const (
	TagUUID     = "canonical_uuid"
	TagEmail    = "app_email"
	TagDate     = "iso_date"
	TagSafeText = "safe_text"
)

// Global validator instance for reuse
var validate = NewValidator()

// NewValidator returns a validator that reports JSON field names and knows
// the application's custom tags.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	mustRegister(v, TagUUID, domain.IsValidIdentifier)
	mustRegister(v, TagEmail, domain.IsValidEmail)
	mustRegister(v, TagDate, domain.IsValidDate)
	mustRegister(v, TagSafeText, domain.IsSafeText)
	return v
}

func mustRegister(v *validator.Validate, tag string, check func(string) bool) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return check(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// FieldError describes one failing field of a request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every failing field of a request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap classifies the error as a validation failure.
func (e *ValidationError) Unwrap() error {
	return domain.ErrValidation
}

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}

// ValidateRequest validates the given struct and returns a *ValidationError
// naming every failing field, or nil.
func ValidateRequest(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

// fieldMessage renders a failed validation for clients.
func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	isText := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if isText {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if isText {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case TagEmail:
		return field + " must be a valid email"
	case TagUUID:
		return fmt.Sprintf("%s %v is not a valid UUID", field, fe.Value())
	case TagDate:
		return field + " must be a YYYY-MM-DD date"
	case TagSafeText:
		return field + " contains unacceptable characters"
	default:
		return field + " is invalid"
	}
}
