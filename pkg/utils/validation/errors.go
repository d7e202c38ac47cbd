package validation

import (
	"errors"
	"sort"
	"strings"
)

var ErrInvalidJSON = errors.New("request body must be a JSON object")

// FieldErrors maps a JSON field name to its messages.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e FieldErrors) Has(field string) bool {
	return len(e[field]) > 0
}

// Err returns nil when no field failed.
func (e FieldErrors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return &ValidationError{Fields: e}
}

// ValidationError is returned for input that fails the schema. Handlers
// answer it with 400 and the field map.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
