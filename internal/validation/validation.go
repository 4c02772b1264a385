package validation

import (
	"regexp"
	"strconv"
	"strings"

	"zendesk-analytics/internal/apperrors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Validator collects field errors; the first error per field is kept.
type Validator struct {
	errors map[string]string
}

// New creates a new validator
func New() *Validator {
	return &Validator{errors: make(map[string]string)}
}

func (v *Validator) add(field, message string) {
	if _, exists := v.errors[field]; !exists {
		v.errors[field] = message
	}
}

// HasErrors returns true if there are validation errors
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Err returns a ValidationError describing every failed field, or nil.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return apperrors.InvalidFields(v.errors)
}

// Required validates that a string is not empty
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// Email validates email format. Empty values are left to Required.
func (v *Validator) Email(field, value string) *Validator {
	if value != "" && !IsEmail(value) {
		v.add(field, "Must be a valid email address")
	}
	return v
}

// OptionalEmail validates an email only when one is given.
func (v *Validator) OptionalEmail(field string, value *string) *Validator {
	if value != nil {
		v.Required(field, *value).Email(field, *value)
	}
	return v
}

// Min validates minimum integer value
func (v *Validator) Min(field string, value, min int) *Validator {
	if value < min {
		v.add(field, "Must be at least "+strconv.Itoa(min))
	}
	return v
}

// Positive validates that an identifier is greater than zero
func (v *Validator) Positive(field string, value int64) *Validator {
	if value <= 0 {
		v.add(field, "Must be a positive integer")
	}
	return v
}

// OneOf validates value is one of the allowed values
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return v
		}
	}
	v.add(field, "Must be one of: "+strings.Join(allowed, ", "))
	return v
}

// ID parses a positive integer identifier from a path segment.
func (v *Validator) ID(field, raw string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		v.add(field, "Must be a positive integer")
		return 0
	}
	return id
}

// IsEmail reports whether s looks like a plain email address.
func IsEmail(s string) bool {
	return emailRegex.MatchString(s)
}
