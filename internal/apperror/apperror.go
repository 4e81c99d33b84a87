package apperror

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMissingField = errors.New("missing required field")

// MissingFieldError names the first required input that was absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// MissingField returns a MissingFieldError for field.
func MissingField(field string) *MissingFieldError {
	return &MissingFieldError{Field: field}
}

// Field is a named input value checked by Require.
type Field struct {
	Name  string
	Value string
}

// Require returns a MissingFieldError for the first field that is blank,
// checked in the order given.
func Require(fields ...Field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			return MissingField(f.Name)
		}
	}
	return nil
}

// RequireIfSet is Require for optional inputs: nil pointers are skipped,
// present values must be non-blank.
func RequireIfSet(name string, value *string) error {
	if value == nil {
		return nil
	}
	return Require(Field{Name: name, Value: *value})
}

// FieldOf extracts the field name from a MissingFieldError anywhere in err's chain.
func FieldOf(err error) string {
	var mf *MissingFieldError
	if errors.As(err, &mf) {
		return mf.Field
	}
	return ""
}
