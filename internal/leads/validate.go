package leads

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one failed field with a message fit for the form.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every field that failed.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid lead: " + strings.Join(parts, "; ")
}

// For returns the message for field, or "".
func (e *ValidationError) For(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{v: validator.New()}
}

// Validate checks a normalized draft. The returned error is a
// *ValidationError when any field fails.
func (v *Validator) Validate(d Draft) error {
	err := v.v.Struct(d)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("validate lead: %w", err)
	}
	out := &ValidationError{}
	for _, fe := range ve {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	label := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "enter a valid email address"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	}
	return label + " is invalid"
}
