package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/skillsenselab/authkit/errors"
)

// Validator collects field validation errors for engine and registration
// inputs. Checks chain; Validate reports everything found at once.
type Validator struct {
	errors []FieldError
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{
		errors: make([]FieldError, 0),
	}
}

// AddError adds a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns an AppError if there are validation errors, nil otherwise.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}

	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}

	appErr := errors.Validation(strings.Join(messages, "; "))
	appErr.Details = map[string]any{
		"fields": v.errors,
	}

	return appErr
}

// Required checks if a string is non-empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// RequiredUUID checks an invocation or correlation identifier: it must be a
// valid non-nil UUID.
func (v *Validator) RequiredUUID(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
		return v
	}

	parsed, err := uuid.Parse(value)
	if err != nil {
		v.AddError(field, "must be a valid UUID")
		return v
	}

	if parsed == uuid.Nil {
		v.AddError(field, "must not be empty")
	}

	return v
}

// OptionalUUID checks if a non-empty string is a valid UUID.
func (v *Validator) OptionalUUID(field, value string) *Validator {
	if value == "" {
		return v
	}
	if _, err := uuid.Parse(value); err != nil {
		v.AddError(field, "must be a valid UUID")
	}
	return v
}

var rolePrefixPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// RolePrefix checks the prefix applied to bare role names in rule
// expressions, e.g. "ROLE_": non-empty, letters, digits, and underscores only.
func (v *Validator) RolePrefix(field, value string) *Validator {
	if value == "" {
		v.AddError(field, "is required")
		return v
	}
	if !rolePrefixPattern.MatchString(value) {
		v.AddError(field, "must contain only letters, digits, and underscores")
	}
	return v
}

// HandlerKey checks a denial handler designation: it must be usable as a
// component container key, so non-empty with no whitespace.
func (v *Validator) HandlerKey(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
		return v
	}
	if strings.ContainsAny(value, " \t\n") {
		v.AddError(field, "must not contain whitespace")
	}
	return v
}

// OptionalHandlerKey is HandlerKey for designations that may be absent.
func (v *Validator) OptionalHandlerKey(field, value string) *Validator {
	if value == "" {
		return v
	}
	return v.HandlerKey(field, value)
}

// OneOf checks if a value is one of the allowed values.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.AddError(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
	return v
}
