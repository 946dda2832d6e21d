package httputil

import (
	"bytes"
	"encoding/json"
)

// OptionalString tracks presence and value for JSON merge-patch fields:
//   - Present=false: field absent (leave unchanged)
//   - Present=true, Value=nil: field is null (clear)
//   - Present=true, Value!=nil: field has a value
type OptionalString struct {
	Present bool
	Value   *string
}

// UnmarshalJSON is only called when the field is present in the JSON.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true

	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// Set builds a present value; convenient in tests and internal callers.
func Set(s string) OptionalString {
	return OptionalString{Present: true, Value: &s}
}

// Null builds a present null.
func Null() OptionalString {
	return OptionalString{Present: true}
}

// Apply writes the field into dst when present and reports whether it did.
func (o OptionalString) Apply(dst **string) bool {
	if !o.Present {
		return false
	}
	if o.Value == nil {
		*dst = nil
		return true
	}
	v := *o.Value
	*dst = &v
	return true
}
