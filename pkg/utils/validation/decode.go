package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Object is a decoded JSON object whose values are still raw.
type Object map[string]json.RawMessage

// DecodeObject parses a request body. An empty body is an empty object.
func DecodeObject(body []byte) (Object, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return Object{}, nil
	}

	var obj Object
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		return nil, ErrInvalidJSON
	}
	return obj, nil
}

func jsonType(raw json.RawMessage) string {
	s := bytes.TrimSpace(raw)
	if len(s) == 0 {
		return "undefined"
	}
	switch s[0] {
	case '"':
		return "string"
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

func typeMismatch(expected string, raw json.RawMessage) string {
	return fmt.Sprintf("Expected %s, received %s", expected, jsonType(raw))
}

// reader pulls typed values out of an Object, recording type mismatches.
// Absent keys yield nil and no error; presence rules belong to the form tags.
type reader struct {
	obj  Object
	errs FieldErrors
}

func newReader(obj Object) *reader {
	return &reader{obj: obj, errs: FieldErrors{}}
}

func (r *reader) String(key string) *string {
	raw, ok := r.obj[key]
	if !ok {
		return nil
	}
	var s string
	if jsonType(raw) != "string" || json.Unmarshal(raw, &s) != nil {
		r.errs.Add(key, typeMismatch("string", raw))
		return nil
	}
	return &s
}

// TrimmedString is String with surrounding whitespace removed.
func (r *reader) TrimmedString(key string) *string {
	s := r.String(key)
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}

// NullableString distinguishes absent (set=false) from null (set=true, nil).
func (r *reader) NullableString(key string) (value *string, set bool) {
	raw, ok := r.obj[key]
	if !ok {
		return nil, false
	}
	if jsonType(raw) == "null" {
		return nil, true
	}
	var s string
	if jsonType(raw) != "string" || json.Unmarshal(raw, &s) != nil {
		r.errs.Add(key, typeMismatch("string", raw))
		return nil, false
	}
	return &s, true
}

// OptionalText reads a nullable string where "" means not provided.
func (r *reader) OptionalText(key string) *string {
	s, _ := r.NullableString(key)
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Int accepts whole JSON numbers and strings holding an integer.
func (r *reader) Int(key string) *int {
	raw, ok := r.obj[key]
	if !ok {
		return nil
	}

	switch jsonType(raw) {
	case "number":
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			r.errs.Add(key, typeMismatch("number", raw))
			return nil
		}
		if f != math.Trunc(f) {
			r.errs.Add(key, "Expected integer, received float")
			return nil
		}
		if f > math.MaxInt32 || f < math.MinInt32 {
			r.errs.Add(key, "Number is out of range")
			return nil
		}
		n := int(f)
		return &n
	case "string":
		var s string
		_ = json.Unmarshal(raw, &s)
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			r.errs.Add(key, typeMismatch("number", raw))
			return nil
		}
		return &n
	default:
		r.errs.Add(key, typeMismatch("number", raw))
		return nil
	}
}

func (r *reader) Bool(key string) *bool {
	raw, ok := r.obj[key]
	if !ok {
		return nil
	}
	var b bool
	if jsonType(raw) != "boolean" || json.Unmarshal(raw, &b) != nil {
		r.errs.Add(key, typeMismatch("boolean", raw))
		return nil
	}
	return &b
}
